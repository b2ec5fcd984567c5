package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ZipFile là một file nằm trong thư mục cấp 1 của archive
type ZipFile struct {
	Name        string
	Type        string // pdf | word
	ContentType string
	Data        []byte
}

// ZipFolder gom các file theo thư mục cấp 1 của archive
type ZipFolder struct {
	Name  string
	Files []ZipFile
}

// fileTypeFromName suy ra loại file cho descriptor: pdf hoặc word
func fileTypeFromName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return "pdf"
	}
	return "word"
}

func contentTypeFromName(name string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(strings.ToLower(name), ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(strings.ToLower(name), ".doc"):
		return "application/msword"
	default:
		return "application/octet-stream"
	}
}

// ParseZipArchive đọc toàn bộ archive và gom file theo thư mục chứa nó.
// Tên thư mục lấy từ segment ngay trước tên file nên không phụ thuộc việc
// ZIP có thư mục gốc bao ngoài hay không (Week1/a.pdf và root/Week1/a.pdf
// đều thuộc folder Week1). Entry không nằm trong thư mục nào thì bỏ qua.
// Thứ tự folder giữ theo thứ tự xuất hiện trong archive.
func ParseZipArchive(data []byte) ([]*ZipFolder, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("không đọc được file ZIP: %w", err)
	}

	var folders []*ZipFolder
	byName := make(map[string]*ZipFolder)

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		parts := strings.Split(strings.Trim(entry.Name, "/"), "/")
		if len(parts) < 2 {
			continue // file nằm ở gốc archive, không thuộc folder nào
		}
		folderName := parts[len(parts)-2]
		fileName := parts[len(parts)-1]
		if folderName == "" || fileName == "" || strings.HasPrefix(fileName, ".") {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("không mở được entry %s: %w", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("không đọc được entry %s: %w", entry.Name, err)
		}

		folder, ok := byName[folderName]
		if !ok {
			folder = &ZipFolder{Name: folderName}
			byName[folderName] = folder
			folders = append(folders, folder)
		}
		folder.Files = append(folder.Files, ZipFile{
			Name:        fileName,
			Type:        fileTypeFromName(fileName),
			ContentType: contentTypeFromName(fileName),
			Data:        content,
		})
	}

	return folders, nil
}

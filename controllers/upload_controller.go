package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-classroom-backend/models"
	"github.com/vnkhanh/e-classroom-backend/services"
	"github.com/vnkhanh/e-classroom-backend/utils"
)

// UploadZip nhận file ZIP chứa tài liệu theo tuần/chủ đề. Chạy hai pha:
//  1. gom entry theo thư mục cấp 1 (thuần in-memory, services.ParseZipArchive)
//  2. mỗi thư mục xử lý song song: tạo Session riêng trước để Folder có
//     session_id, rồi upload từng file lên Supabase và ghi Folder record.
//
// Mỗi thư mục vẫn map với đúng một Session.
func UploadZip(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	uploadedBy, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không xác định được người tải lên"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cần file ZIP đính kèm"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không mở được file ZIP"})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file ZIP"})
		return
	}

	zipFolders, err := services.ParseZipArchive(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make([]models.Folder, len(zipFolders))
	g, ctx := errgroup.WithContext(c.Request.Context())

	for i, zf := range zipFolders {
		g.Go(func() error {
			// Session tạo trước để folder trỏ tới session_id hợp lệ
			session := models.Session{
				Title:     zf.Name,
				CreatedBy: uploadedBy,
			}
			if err := db.WithContext(ctx).Create(&session).Error; err != nil {
				return err
			}

			folder := models.Folder{
				Name:      zf.Name,
				SessionID: session.ID,
			}

			for _, zfile := range zf.Files {
				// Một folder lỗi thì ctx bị huỷ, các folder còn lại dừng
				// thay vì tiếp tục upload
				if err := ctx.Err(); err != nil {
					return err
				}
				objectPath := utils.ZipEntryObjectPath(zf.Name, zfile.Name)
				fileURL, err := utils.UploadBytesToSupabase(zfile.Data, objectPath, zfile.ContentType)
				if err != nil {
					return err
				}
				folder.Files = append(folder.Files, models.FolderFile{
					Name:    zfile.Name,
					Type:    zfile.Type,
					FileURL: fileURL,
				})
			}

			if err := db.WithContext(ctx).Create(&folder).Error; err != nil {
				return err
			}
			results[i] = folder
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không xử lý được file ZIP", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tải lên thành công",
		"folders": results,
	})
}

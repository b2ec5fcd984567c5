package controllers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-classroom-backend/models"
	"github.com/vnkhanh/e-classroom-backend/services"
	"github.com/vnkhanh/e-classroom-backend/utils"
	"github.com/vnkhanh/e-classroom-backend/ws"
)

// Transcriber chuyển audio thành text (Google Speech-to-Text)
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// Translator dịch transcription sang tiếng Anh khi lời giảng không phải tiếng Anh
type Translator interface {
	TranslateToEnglish(ctx context.Context, text string) (string, error)
}

type TranscribeController struct {
	Speech Transcriber
	AI     Translator
}

func NewTranscribeController(speech Transcriber, ai Translator) *TranscribeController {
	return &TranscribeController{Speech: speech, AI: ai}
}

// Transcribe nhận file ghi âm lời giảng của một trang slide, gọi
// speech-to-text rồi cập nhật cột transcription của đúng trang đó.
// Các trang khác không bị đụng tới.
func (tc *TranscribeController) Transcribe(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	documentID := c.PostForm("document_id")
	pageNumberStr := c.PostForm("page_number")
	file, err := c.FormFile("file")
	if documentID == "" || pageNumberStr == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cần file, document_id và page_number"})
		return
	}

	pageNumber, err := strconv.Atoi(pageNumberStr)
	if err != nil || pageNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_number không hợp lệ"})
		return
	}

	var doc models.Document
	if err := db.First(&doc, "id = ?", documentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy tài liệu"})
		return
	}

	var page models.Page
	if err := db.Where("document_id = ? AND page_number = ?", documentID, pageNumber).
		First(&page).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Không tìm thấy trang %d của tài liệu", pageNumber)})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không mở được file audio"})
		return
	}
	audio, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file audio"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/webm"
	}

	// Bước 1: speech-to-text. Lỗi provider trả thẳng về client.
	transcription, err := tc.Speech.Transcribe(c.Request.Context(), audio, contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể phiên âm audio", "details": err.Error()})
		return
	}

	// Bước 2: đảm bảo transcription là tiếng Anh
	translated, err := tc.AI.TranslateToEnglish(c.Request.Context(), transcription)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể dịch transcription", "details": err.Error()})
		return
	}
	transcription = translated

	updates := map[string]interface{}{
		"transcription": transcription,
	}

	// Lưu audio gốc để nghe lại, lỗi upload không chặn transcription
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".webm"
	}
	objectPath := fmt.Sprintf("audio/%s-p%d%s", documentID, pageNumber, ext)
	if audioURL, err := utils.UploadBytesToSupabase(audio, objectPath, contentType); err != nil {
		log.Println("Không upload được audio ghi âm:", err)
	} else {
		// Ghi âm lại với định dạng khác sẽ tạo object mới, xoá object cũ
		// để không bỏ rác trong bucket
		if page.AudioURL != "" && page.AudioURL != audioURL {
			if err := utils.DeleteFileFromSupabase(page.AudioURL); err != nil {
				log.Println("Không xoá được audio cũ:", err)
			}
		}
		updates["audio_url"] = audioURL
	}

	// Tính thời lượng nếu là MP3
	if strings.Contains(contentType, "mpeg") || strings.Contains(contentType, "mp3") {
		if dur, err := services.MP3Duration(audio); err == nil {
			updates["audio_duration"] = dur
		}
	}

	// Chỉ cập nhật bản ghi trang đang xử lý
	if err := db.Model(&models.Page{}).
		Where("document_id = ? AND page_number = ?", documentID, pageNumber).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được transcription"})
		return
	}

	ws.SendPageUpdate(documentID, pageNumber, "transcription")

	c.JSON(http.StatusOK, gin.H{
		"document_id":   documentID,
		"page_number":   pageNumber,
		"transcription": transcription,
	})
}

package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-classroom-backend/models"
	"github.com/vnkhanh/e-classroom-backend/services"
	"github.com/vnkhanh/e-classroom-backend/utils"
)

// UploadDocument nhận slide bài giảng: hoặc file đính kèm (PDF) hoặc URL
// tham chiếu kèm loại file. Với PDF, text được trích xuất theo từng trang
// và mỗi trang thành một bản ghi Page với transcription/summary rỗng.
func UploadDocument(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	uploadedBy, err := uuid.Parse(c.PostForm("uploaded_by"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded_by không hợp lệ"})
		return
	}
	sessionID, err := uuid.Parse(c.PostForm("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id không hợp lệ"})
		return
	}

	var session models.Session
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phiên học"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		// Không có file đính kèm -> nhận URL tham chiếu
		refURL := c.PostForm("url")
		if refURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cần file đính kèm hoặc url"})
			return
		}
		doc := models.Document{
			Name:       c.DefaultPostForm("name", refURL),
			UploadedBy: uploadedBy,
			SessionID:  sessionID,
			FileURL:    refURL,
			FileType:   c.DefaultPostForm("type", "url"),
		}
		if err := db.Create(&doc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được tài liệu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tải lên thành công", "document": doc})
		return
	}

	if file.Size > 20*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File vượt quá 20MB"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))

	// Trích xuất text theo trang trước khi ghi DB: lỗi trích xuất thì
	// không lưu gì cả
	var pageTexts []string
	if ext == ".pdf" {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không mở được file", "details": err.Error()})
			return
		}
		pageTexts, err = services.ExtractPagesFromPDF(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể trích xuất nội dung", "details": err.Error()})
			return
		}
	}

	docID := uuid.New()
	publicURL, err := utils.UploadDocumentToSupabase(file, docID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi upload Supabase", "details": err.Error()})
		return
	}

	doc := models.Document{
		ID:         docID,
		Name:       c.DefaultPostForm("name", file.Filename),
		UploadedBy: uploadedBy,
		SessionID:  sessionID,
		FileURL:    publicURL,
		FileType:   strings.TrimPrefix(ext, "."),
		FileSize:   file.Size,
	}

	// Document và các Page được ghi trong một transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		for i, text := range pageTexts {
			page := models.Page{
				DocumentID: doc.ID,
				PageNumber: i + 1,
				Content:    text,
			}
			if err := tx.Create(&page).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được tài liệu", "details": err.Error()})
		return
	}

	db.Preload("Pages").First(&doc, "id = ?", doc.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Tải lên thành công",
		"document": doc,
	})
}

// Lấy chi tiết tài liệu
func GetDocument(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	docID := c.Param("id")

	var doc models.Document
	if err := db.First(&doc, "id = ?", docID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy tài liệu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// Lấy toàn bộ trang của tài liệu theo thứ tự trang
func GetDocumentPages(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	docID := c.Param("id")

	var doc models.Document
	if err := db.First(&doc, "id = ?", docID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy tài liệu"})
		return
	}

	var pages []models.Page
	if err := db.Where("document_id = ?", docID).
		Order("page_number ASC").
		Find(&pages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách trang"})
		return
	}

	if len(pages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tài liệu chưa có trang nào"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/e-classroom-backend/models"
	"github.com/vnkhanh/e-classroom-backend/utils"
)

type CreateSessionInput struct {
	Title     string    `json:"title" binding:"required"`
	CreatedBy uuid.UUID `json:"created_by" binding:"required"`
}

type SessionUserInput struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// Tạo phiên học mới, người tạo tự động join
func CreateSession(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := models.Session{
		Title:     input.Title,
		CreatedBy: input.CreatedBy,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		participant := models.SessionParticipant{
			SessionID: session.ID,
			UserID:    input.CreatedBy,
		}
		return tx.Create(&participant).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo phiên học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Lấy chi tiết phiên học kèm danh sách người tham gia
func GetSession(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	sessionID := c.Param("id")

	var session models.Session
	if err := db.Preload("Participants").First(&session, "id = ?", sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phiên học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// JoinSession thêm user vào phiên học. Join lại nhiều lần vẫn chỉ có một
// dòng participant nhờ ON CONFLICT DO NOTHING trên khoá kép.
func JoinSession(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	sessionID := c.Param("id")

	var input SessionUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var session models.Session
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phiên học"})
		return
	}

	participant := models.SessionParticipant{
		SessionID: session.ID,
		UserID:    input.UserID,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tham gia phiên học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã tham gia phiên học"})
}

// LeaveSession xoá user khỏi phiên học. Rời khi chưa join vẫn trả OK.
func LeaveSession(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	sessionID := c.Param("id")

	var input SessionUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu user_id"})
		return
	}

	if err := db.Where("session_id = ? AND user_id = ?", sessionID, input.UserID).
		Delete(&models.SessionParticipant{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể rời phiên học"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã rời phiên học"})
}

// GetSessionQRCode sinh mã QR trỏ tới trang join của phiên học.
// Không ký, không hết hạn: ai nhận được mã đều join được.
func GetSessionQRCode(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	sessionID := c.Param("id")

	var session models.Session
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy phiên học"})
		return
	}

	dataURL, err := utils.GenerateSessionQRCode(session.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo mã QR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"qr_code_data_url": dataURL})
}

// Lấy danh sách tài liệu của một phiên học
func GetSessionDocuments(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	sessionID := c.Param("id")

	var documents []models.Document
	if err := db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách tài liệu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

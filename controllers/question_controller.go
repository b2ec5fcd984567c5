package controllers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-classroom-backend/models"
	"github.com/vnkhanh/e-classroom-backend/utils"
	"github.com/vnkhanh/e-classroom-backend/ws"
)

// QuestionAnswerer trả lời câu hỏi của sinh viên và tổng hợp insights
// cho giảng viên
type QuestionAnswerer interface {
	AnswerTextQuestion(ctx context.Context, question string) (string, error)
	AnswerImageQuestion(ctx context.Context, imageData []byte, imageFormat string, extraPrompt string) (string, error)
	GenerateInsights(ctx context.Context, questions []string) (string, error)
}

type QuestionController struct {
	AI QuestionAnswerer
}

func NewQuestionController(ai QuestionAnswerer) *QuestionController {
	return &QuestionController{AI: ai}
}

type textQuestionInput struct {
	Content string `json:"content"`
	AskedBy string `json:"asked_by" binding:"required"`
	Type    string `json:"type" binding:"required"`
}

// imageFormatFromFilename suy ra format ảnh cho Gemini từ phần mở rộng
func imageFormatFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "png"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
}

// CreateQuestion nhận câu hỏi của sinh viên trong phiên học.
// Content-Type quyết định loại câu hỏi ngay tại boundary:
//   - application/json  -> câu hỏi text
//   - multipart/form-data -> câu hỏi ảnh (kèm prompt bổ sung tuỳ chọn)
func (qc *QuestionController) CreateQuestion(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session id không hợp lệ"})
		return
	}

	contentType := c.GetHeader("Content-Type")
	switch {
	case strings.Contains(contentType, "application/json"):
		qc.createTextQuestion(c, db, sessionID)
	case strings.Contains(contentType, "multipart/form-data"):
		qc.createImageQuestion(c, db, sessionID)
	default:
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Content-Type không được hỗ trợ"})
	}
}

func (qc *QuestionController) createTextQuestion(c *gin.Context, db *gorm.DB, sessionID uuid.UUID) {
	var input textQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Type != string(models.QuestionText) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Loại câu hỏi không hợp lệ"})
		return
	}
	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nội dung câu hỏi không được để trống"})
		return
	}

	askedBy, err := uuid.Parse(input.AskedBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asked_by không hợp lệ"})
		return
	}

	answer, err := qc.AI.AnswerTextQuestion(c.Request.Context(), input.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể tạo câu trả lời", "details": err.Error()})
		return
	}

	question := models.Question{
		SessionID:  sessionID,
		AskedBy:    askedBy,
		Type:       models.QuestionText,
		Content:    input.Content,
		Answer:     answer,
		AnswerType: models.QuestionText,
	}
	if err := db.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được câu hỏi"})
		return
	}

	ws.SendQuestionCreated(sessionID.String(), question.ID.String())
	c.JSON(http.StatusOK, gin.H{"question": question})
}

func (qc *QuestionController) createImageQuestion(c *gin.Context, db *gorm.DB, sessionID uuid.UUID) {
	qType := c.PostForm("type")
	file, err := c.FormFile("file")
	if qType != string(models.QuestionImage) || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Loại câu hỏi không hợp lệ hoặc thiếu ảnh"})
		return
	}

	askedBy, err := uuid.Parse(c.PostForm("asked_by"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asked_by không hợp lệ"})
		return
	}
	prompt := c.PostForm("prompt")

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không mở được ảnh"})
		return
	}
	imageData, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được ảnh"})
		return
	}

	// Lưu ảnh để giảng viên xem lại, rồi gửi thẳng bytes cho Gemini
	imageURL, err := utils.UploadQuestionImageToSupabase(file, uuid.New().String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi upload Supabase", "details": err.Error()})
		return
	}

	answer, err := qc.AI.AnswerImageQuestion(c.Request.Context(), imageData, imageFormatFromFilename(file.Filename), prompt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể tạo câu trả lời", "details": err.Error()})
		return
	}

	question := models.Question{
		SessionID:  sessionID,
		AskedBy:    askedBy,
		Type:       models.QuestionImage,
		Prompt:     prompt,
		ImageURL:   imageURL,
		Answer:     answer,
		AnswerType: models.QuestionImage,
	}
	if err := db.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được câu hỏi"})
		return
	}

	ws.SendQuestionCreated(sessionID.String(), question.ID.String())
	c.JSON(http.StatusOK, gin.H{"question": question})
}

// Lấy toàn bộ câu hỏi của một phiên học
func (qc *QuestionController) GetSessionQuestions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	sessionID := c.Param("id")

	var questions []models.Question
	if err := db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách câu hỏi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// GetSessionInsights tổng hợp câu hỏi text của phiên học thành nhận định
// cho giảng viên. Phiên chưa có câu hỏi nào thì trả 404.
func (qc *QuestionController) GetSessionInsights(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	sessionID := c.Param("id")

	var contents []string
	if err := db.Model(&models.Question{}).
		Where("session_id = ? AND content <> ''", sessionID).
		Order("created_at ASC").
		Pluck("content", &contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách câu hỏi"})
		return
	}

	if len(contents) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chưa có câu hỏi nào trong phiên học này"})
		return
	}

	insights, err := qc.AI.GenerateInsights(c.Request.Context(), contents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo insights", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

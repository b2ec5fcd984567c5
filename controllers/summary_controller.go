package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-classroom-backend/models"
	"github.com/vnkhanh/e-classroom-backend/ws"
)

// PageSummarizer tóm tắt một trang từ nội dung slide + lời giảng
type PageSummarizer interface {
	SummarizePage(ctx context.Context, content string, transcription string) (string, error)
}

type SummaryController struct {
	AI PageSummarizer
}

func NewSummaryController(ai PageSummarizer) *SummaryController {
	return &SummaryController{AI: ai}
}

// SummarizePage tạo tóm tắt cho một trang từ text đã trích xuất và
// transcription đã lưu. Gọi lại sẽ sinh tóm tắt mới và ghi đè.
func (sc *SummaryController) SummarizePage(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	documentID := c.PostForm("document_id")
	pageNumberStr := c.PostForm("page_number")
	if documentID == "" || pageNumberStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cần document_id và page_number"})
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

	summary, err := sc.AI.SummarizePage(c.Request.Context(), page.Content, page.Transcription)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể tạo tóm tắt", "details": err.Error()})
		return
	}

	if err := db.Model(&models.Page{}).
		Where("document_id = ? AND page_number = ?", documentID, pageNumber).
		Update("summary", summary).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không lưu được tóm tắt"})
		return
	}

	ws.SendPageUpdate(documentID, pageNumber, "summary")

	c.JSON(http.StatusOK, gin.H{
		"document_id": documentID,
		"page_number": pageNumber,
		"summary":     summary,
	})
}

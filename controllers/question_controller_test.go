package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTextQuestionEmptyContent(t *testing.T) {
	db, _ := setupMockDB(t)
	r := newTestRouter(db)
	qc := NewQuestionController(&stubAI{answer: "gợi ý"})
	r.POST("/api/sessions/:id/questions", qc.CreateQuestion)

	body, _ := json.Marshal(map[string]string{
		"content":  "   ",
		"asked_by": uuid.New().String(),
		"type":     "text",
	})
	w := performRequest(r, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/questions", uuid.New()),
		bytes.NewReader(body), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTextQuestionWrongType(t *testing.T) {
	db, _ := setupMockDB(t)
	r := newTestRouter(db)
	qc := NewQuestionController(&stubAI{})
	r.POST("/api/sessions/:id/questions", qc.CreateQuestion)

	body, _ := json.Marshal(map[string]string{
		"content":  "câu hỏi",
		"asked_by": uuid.New().String(),
		"type":     "image",
	})
	w := performRequest(r, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/questions", uuid.New()),
		bytes.NewReader(body), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTextQuestionUnsupportedContentType(t *testing.T) {
	db, _ := setupMockDB(t)
	r := newTestRouter(db)
	qc := NewQuestionController(&stubAI{})
	r.POST("/api/sessions/:id/questions", qc.CreateQuestion)

	w := performRequest(r, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/questions", uuid.New()),
		bytes.NewReader([]byte("content=abc")), "text/plain")

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

// Câu hỏi text hợp lệ: lưu cả nội dung gốc lẫn câu trả lời sinh ra
func TestCreateTextQuestionPersistsContentAndAnswer(t *testing.T) {
	db, mock := setupMockDB(t)
	r := newTestRouter(db)
	qc := NewQuestionController(&stubAI{answer: "Hãy xem lại định nghĩa chuẩn hoá."})
	r.POST("/api/sessions/:id/questions", qc.CreateQuestion)

	mock.ExpectQuery(`INSERT INTO "questions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	body, _ := json.Marshal(map[string]string{
		"content":  "Chuẩn hoá 3NF là gì?",
		"asked_by": uuid.New().String(),
		"type":     "text",
	})
	w := performRequest(r, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/questions", uuid.New()),
		bytes.NewReader(body), "application/json")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Question struct {
			Content string `json:"content"`
			Answer  string `json:"answer"`
			Type    string `json:"type"`
		} `json:"question"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Chuẩn hoá 3NF là gì?", resp.Question.Content)
	assert.Equal(t, "Hãy xem lại định nghĩa chuẩn hoá.", resp.Question.Answer)
	assert.Equal(t, "text", resp.Question.Type)
}

// Phiên chưa có câu hỏi: insights trả 404 với thông báo rõ ràng,
// không trả chuỗi rỗng
func TestGetSessionInsightsNoQuestions(t *testing.T) {
	db, mock := setupMockDB(t)
	r := newTestRouter(db)
	qc := NewQuestionController(&stubAI{insights: "không được gọi tới"})
	r.GET("/api/sessions/:id/insights", qc.GetSessionInsights)

	mock.ExpectQuery(`SELECT "content" FROM "questions"`).
		WillReturnRows(sqlmock.NewRows([]string{"content"}))

	w := performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/sessions/%s/insights", uuid.New()), nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Chưa có câu hỏi")
}

func TestGetSessionInsights(t *testing.T) {
	db, mock := setupMockDB(t)
	r := newTestRouter(db)
	qc := NewQuestionController(&stubAI{insights: "Sinh viên còn lúng túng về JOIN."})
	r.GET("/api/sessions/:id/insights", qc.GetSessionInsights)

	mock.ExpectQuery(`SELECT "content" FROM "questions"`).
		WillReturnRows(sqlmock.NewRows([]string{"content"}).
			AddRow("JOIN là gì?").
			AddRow("INNER JOIN khác LEFT JOIN chỗ nào?"))

	w := performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/sessions/%s/insights", uuid.New()), nil, "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sinh viên còn lúng túng về JOIN.", resp["insights"])
}

func TestImageFormatFromFilename(t *testing.T) {
	assert.Equal(t, "png", imageFormatFromFilename("bai_tap.PNG"))
	assert.Equal(t, "webp", imageFormatFromFilename("anh.webp"))
	assert.Equal(t, "jpeg", imageFormatFromFilename("hinh.jpg"))
	assert.Equal(t, "jpeg", imageFormatFromFilename("khong_duoi"))
}

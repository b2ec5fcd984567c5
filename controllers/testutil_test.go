package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/e-classroom-backend/middleware"
)

// setupMockDB tạo gorm.DB chạy trên sqlmock thay cho PostgreSQL thật
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return db, mock
}

// newTestRouter tạo router tối giản có sẵn DB trong context
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DBMiddleware(db))
	return r
}

func performRequest(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// stubAI thay cho Gemini/Speech trong test
type stubAI struct {
	answer        string
	insights      string
	summary       string
	transcription string
	err           error
}

func (s *stubAI) AnswerTextQuestion(ctx context.Context, question string) (string, error) {
	return s.answer, s.err
}

func (s *stubAI) AnswerImageQuestion(ctx context.Context, imageData []byte, imageFormat string, extraPrompt string) (string, error) {
	return s.answer, s.err
}

func (s *stubAI) GenerateInsights(ctx context.Context, questions []string) (string, error) {
	return s.insights, s.err
}

func (s *stubAI) SummarizePage(ctx context.Context, content string, transcription string) (string, error) {
	return s.summary, s.err
}

func (s *stubAI) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	return text, s.err
}

func (s *stubAI) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	return s.transcription, s.err
}

package controllers

import (
	"archive/zip"
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func zipUploadBody(t *testing.T, entries map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	zipBuf := &bytes.Buffer{}
	zw := zip.NewWriter(zipBuf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", "tailieu.zip")
	require.NoError(t, err)
	_, err = fw.Write(zipBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func uploadZipRouter(db *gorm.DB, userID string) *gin.Engine {
	r := newTestRouter(db)
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/api/uploadZip", UploadZip)
	return r
}

func TestUploadZipMissingUser(t *testing.T) {
	db, _ := setupMockDB(t)
	r := uploadZipRouter(db, "")

	body, contentType := zipUploadBody(t, map[string]string{"Week1/a.pdf": "x"})
	w := performRequest(r, http.MethodPost, "/api/uploadZip", body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadZipInvalidArchive(t *testing.T) {
	db, _ := setupMockDB(t)
	r := uploadZipRouter(db, uuid.New().String())

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", "tailieu.zip")
	require.NoError(t, err)
	_, err = fw.Write([]byte("khong phai zip"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := performRequest(r, http.MethodPost, "/api/uploadZip", body, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Một folder trong ZIP thành một Session + Folder, file được đẩy lên storage
func TestUploadZipCreatesSessionPerFolder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Key":"uploads/folders/week1/a.pdf"}`))
	}))
	defer srv.Close()

	t.Setenv("SUPABASE_URL", srv.URL)
	t.Setenv("SUPABASE_KEY", "service-key")

	db, mock := setupMockDB(t)
	r := uploadZipRouter(db, uuid.New().String())

	mock.ExpectQuery(`INSERT INTO "sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "folders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "folder_files"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	body, contentType := zipUploadBody(t, map[string]string{"Week1/a.pdf": "pdf a"})
	w := performRequest(r, http.MethodPost, "/api/uploadZip", body, contentType)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Week1")
	assert.Contains(t, w.Body.String(), "folders/week1/a.pdf")
}

// Storage lỗi thì cả request trả 500, không trả kết quả nửa vời
func TestUploadZipStorageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("SUPABASE_URL", srv.URL)
	t.Setenv("SUPABASE_KEY", "service-key")

	db, mock := setupMockDB(t)
	r := uploadZipRouter(db, uuid.New().String())

	mock.ExpectQuery(`INSERT INTO "sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	body, contentType := zipUploadBody(t, map[string]string{"Week1/a.pdf": "pdf a"})
	w := performRequest(r, http.MethodPost, "/api/uploadZip", body, contentType)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

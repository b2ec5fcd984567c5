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

	"github.com/vnkhanh/e-classroom-backend/config"
)

func registerBody(username string) *bytes.Reader {
	body, _ := json.Marshal(map[string]string{
		"full_name": "Nguyễn Văn A",
		"username":  username,
		"email":     username + "@example.com",
		"password":  "matkhau123",
		"role":      "student",
	})
	return bytes.NewReader(body)
}

// Đăng ký với username đã tồn tại phải trả 400, không tạo user mới
func TestRegisterDuplicateUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	config.DB = db
	r := newTestRouter(db)
	r.POST("/api/auth/register", Register)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(uuid.New().String(), "sinhvien01"))

	w := performRequest(r, http.MethodPost, "/api/auth/register",
		registerBody("sinhvien01"), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username đã được sử dụng")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterSuccess(t *testing.T) {
	db, mock := setupMockDB(t)
	config.DB = db
	r := newTestRouter(db)
	r.POST("/api/auth/register", Register)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE username = \$1`).
		WillReturnError(fmt.Errorf("record not found"))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1`).
		WillReturnError(fmt.Errorf("record not found"))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	w := performRequest(r, http.MethodPost, "/api/auth/register",
		registerBody("sinhvien02"), "application/json")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Đăng ký thành công")
	// password đã hash không được trả về trong JSON
	assert.NotContains(t, w.Body.String(), "matkhau123")
}

func TestRegisterInvalidInput(t *testing.T) {
	db, _ := setupMockDB(t)
	config.DB = db
	r := newTestRouter(db)
	r.POST("/api/auth/register", Register)

	body, _ := json.Marshal(map[string]string{"username": "thieu_truong"})
	w := performRequest(r, http.MethodPost, "/api/auth/register",
		bytes.NewReader(body), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

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

func sessionRows(sessionID, createdBy uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "created_by"}).
		AddRow(sessionID.String(), "Tuần 1", createdBy.String())
}

// Join hai lần với cùng user: cả hai request đều 200, insert dùng
// ON CONFLICT DO NOTHING nên chỉ còn một dòng participant
func TestJoinSessionIdempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	r := newTestRouter(db)
	r.POST("/api/sessions/:id/join", JoinSession)

	sessionID := uuid.New()
	userID := uuid.New()

	body, _ := json.Marshal(map[string]string{"user_id": userID.String()})

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`SELECT (.+) FROM "sessions" WHERE id = \$1`).
			WillReturnRows(sessionRows(sessionID, userID))
		result := sqlmock.NewResult(0, 1)
		if i == 1 {
			// lần hai conflict, không thêm dòng mới
			result = sqlmock.NewResult(0, 0)
		}
		mock.ExpectExec(`INSERT INTO "session_participants" (.+) ON CONFLICT DO NOTHING`).
			WillReturnResult(result)

		w := performRequest(r, http.MethodPost,
			fmt.Sprintf("/api/sessions/%s/join", sessionID),
			bytes.NewReader(body), "application/json")
		assert.Equal(t, http.StatusOK, w.Code, "lần join thứ %d", i+1)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinSessionNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	r := newTestRouter(db)
	r.POST("/api/sessions/:id/join", JoinSession)

	mock.ExpectQuery(`SELECT (.+) FROM "sessions" WHERE id = \$1`).
		WillReturnError(fmt.Errorf("record not found"))

	body, _ := json.Marshal(map[string]string{"user_id": uuid.New().String()})
	w := performRequest(r, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/join", uuid.New()),
		bytes.NewReader(body), "application/json")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Rời phiên khi chưa từng join: DELETE không ảnh hưởng dòng nào nhưng
// vẫn trả 200
func TestLeaveSessionNonMemberStillOK(t *testing.T) {
	db, mock := setupMockDB(t)
	r := newTestRouter(db)
	r.DELETE("/api/sessions/:id/leave", LeaveSession)

	mock.ExpectExec(`DELETE FROM "session_participants"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	body, _ := json.Marshal(map[string]string{"user_id": uuid.New().String()})
	w := performRequest(r, http.MethodDelete,
		fmt.Sprintf("/api/sessions/%s/leave", uuid.New()),
		bytes.NewReader(body), "application/json")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveSessionMissingUserID(t *testing.T) {
	db, _ := setupMockDB(t)
	r := newTestRouter(db)
	r.DELETE("/api/sessions/:id/leave", LeaveSession)

	w := performRequest(r, http.MethodDelete,
		fmt.Sprintf("/api/sessions/%s/leave", uuid.New()),
		bytes.NewReader([]byte(`{}`)), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSessionQRCode(t *testing.T) {
	db, mock := setupMockDB(t)
	r := newTestRouter(db)
	r.GET("/api/sessions/:id/qrcode", GetSessionQRCode)

	sessionID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "sessions" WHERE id = \$1`).
		WillReturnRows(sessionRows(sessionID, uuid.New()))

	w := performRequest(r, http.MethodGet,
		fmt.Sprintf("/api/sessions/%s/qrcode", sessionID), nil, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["qr_code_data_url"], "data:image/png;base64,")
}

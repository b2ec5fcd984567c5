package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	Creator   User      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Participants []SessionParticipant `json:"participants,omitempty"`
	Documents    []Document           `json:"documents,omitempty"`
	Questions    []Question           `json:"questions,omitempty"`
}

// SessionParticipant là bảng phụ lưu người đã join phiên học.
// Khoá chính kép (session_id, user_id) đảm bảo không trùng người tham gia,
// join nhiều lần chỉ giữ lại một dòng.
type SessionParticipant struct {
	SessionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"session_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

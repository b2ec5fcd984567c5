package models

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionText  QuestionType = "text"
	QuestionImage QuestionType = "image"
)

type Question struct {
	ID         uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"session_id"`
	Session    Session      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	AskedBy    uuid.UUID    `gorm:"type:uuid;not null" json:"asked_by"`
	Type       QuestionType `gorm:"type:varchar(10);not null" json:"type"`
	Content    string       `gorm:"type:text" json:"content"` // rỗng nếu là câu hỏi ảnh
	Prompt     string       `gorm:"type:text" json:"prompt"`  // yêu cầu bổ sung kèm ảnh
	ImageURL   string       `gorm:"type:text" json:"image_url,omitempty"`
	Answer     string       `gorm:"type:text" json:"answer"`
	AnswerType QuestionType `gorm:"type:varchar(10);default:'text'" json:"answer_type"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

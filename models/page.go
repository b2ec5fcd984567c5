package models

import (
	"time"

	"github.com/google/uuid"
)

// Page là một trang/slide của Document. Mỗi trang là một bản ghi độc lập
// (khoá theo document_id + page_number) nên transcription và summary được
// cập nhật bằng UPDATE một cột, không phải ghi đè cả danh sách trang.
type Page struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocumentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_document_page" json:"document_id"`
	Document      Document  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	PageNumber    int       `gorm:"not null;uniqueIndex:idx_document_page" json:"page_number"` // bắt đầu từ 1
	Content       string    `gorm:"type:text" json:"content"`
	Transcription string    `gorm:"type:text" json:"transcription"`
	Summary       string    `gorm:"type:text" json:"summary"`
	AudioURL      string    `gorm:"type:text" json:"audio_url"`
	AudioDuration float64   `json:"audio_duration"` // giây
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

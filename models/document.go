package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	Uploader   User      `gorm:"foreignKey:UploadedBy;constraint:OnDelete:CASCADE;" json:"-"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	Session    Session   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	FileType   string    `gorm:"size:50" json:"file_type"`
	FileSize   int64     `json:"file_size"` // bytes
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Pages []Page `json:"pages,omitempty"`
}

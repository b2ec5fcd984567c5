package models

import (
	"time"

	"github.com/google/uuid"
)

// Folder gom các file theo thư mục cấp 1 trong file ZIP tải lên.
// Mỗi folder gắn với một Session được tạo riêng cho nó.
type Folder struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	SessionID uuid.UUID `gorm:"type:uuid;not null" json:"session_id"`
	Session   Session   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Files []FolderFile `json:"files,omitempty"`
}

type FolderFile struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FolderID uuid.UUID `gorm:"type:uuid;not null;index" json:"folder_id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Type     string    `gorm:"size:50;not null" json:"type"` // pdf | word
	FileURL  string    `gorm:"type:text;not null" json:"file_url"`
}

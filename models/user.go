package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"   // Quản trị hệ thống
	RoleLecturer UserRole = "teacher" // Giảng viên (chủ phiên học)
	RoleStudent  UserRole = "student" // Sinh viên (người tham gia)
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName  string    `gorm:"size:150;not null" json:"full_name"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Documents []Document `gorm:"foreignKey:UploadedBy" json:"documents,omitempty"`
	Questions []Question `gorm:"foreignKey:AskedBy" json:"questions,omitempty"`
}

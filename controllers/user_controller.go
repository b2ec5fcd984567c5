package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-classroom-backend/models"
)

type CreateUserInput struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserInput struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Tạo user trực tiếp (admin)
func CreateUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check username trùng
	var existing models.User
	if err := db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username đã được sử dụng"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể mã hoá mật khẩu"})
		return
	}

	user := models.User{
		FullName: input.FullName,
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Role:     models.UserRole(input.Role),
	}

	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tạo người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Lấy danh sách user
func GetUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var users []models.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Lấy chi tiết một user
func GetUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.Param("id")

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Cập nhật user, bỏ qua nếu không có thay đổi
func UpdateUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.Param("id")

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy người dùng"})
		return
	}

	// Chỉ cập nhật các field có giá trị mới
	updates := map[string]interface{}{}
	if input.FullName != "" && input.FullName != user.FullName {
		updates["full_name"] = input.FullName
	}
	if input.Username != "" && input.Username != user.Username {
		updates["username"] = input.Username
	}
	if input.Email != "" && input.Email != user.Email {
		updates["email"] = input.Email
	}
	if input.Role != "" && input.Role != string(user.Role) {
		updates["role"] = input.Role
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Không có thay đổi nào"})
		return
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Xoá user
func DeleteUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.Param("id")

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy người dùng"})
		return
	}

	if err := db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xoá người dùng"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xoá người dùng"})
}

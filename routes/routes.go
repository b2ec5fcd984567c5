package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/e-classroom-backend/controllers"
	"github.com/vnkhanh/e-classroom-backend/middleware"
	"github.com/vnkhanh/e-classroom-backend/services"
	"github.com/vnkhanh/e-classroom-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, gemini *services.GeminiService, speech *services.SpeechService) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	// Controller cần provider AI nhận client qua constructor,
	// không dùng biến global
	questionCtrl := controllers.NewQuestionController(gemini)
	transcribeCtrl := controllers.NewTranscribeController(speech, gemini)
	summaryCtrl := controllers.NewSummaryController(gemini)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.POST("/logingoogle", controllers.GoogleLogin)
	}

	users := api.Group("/users")
	{
		users.Use(middleware.DBMiddleware(db))
		users.GET("", middleware.AuthMiddleware(), controllers.GetUsers)
		users.GET("/:id", middleware.AuthMiddleware(), controllers.GetUser)

		// Tạo/sửa/xoá user chỉ dành cho admin
		admin := users.Group("")
		admin.Use(middleware.RequireRoles("admin"))
		admin.POST("", controllers.CreateUser)
		admin.PUT("/:id", controllers.UpdateUser)
		admin.DELETE("/:id", controllers.DeleteUser)
	}

	sessions := api.Group("/sessions")
	{
		sessions.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
		sessions.POST("", controllers.CreateSession)
		sessions.GET("/:id", controllers.GetSession)
		sessions.POST("/:id/join", controllers.JoinSession)
		sessions.DELETE("/:id/leave", controllers.LeaveSession)
		sessions.GET("/:id/qrcode", controllers.GetSessionQRCode)
		sessions.GET("/:id/documents", controllers.GetSessionDocuments)
		sessions.GET("/:id/questions", questionCtrl.GetSessionQuestions)
		sessions.POST("/:id/questions", questionCtrl.CreateQuestion)
		sessions.GET("/:id/insights", questionCtrl.GetSessionInsights)
	}

	documents := api.Group("/documents")
	{
		documents.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
		documents.POST("", controllers.UploadDocument)
		documents.GET("/:id", controllers.GetDocument)
		documents.GET("/:id/pages", controllers.GetDocumentPages)
	}

	// Phiên âm, tóm tắt và upload ZIP là thao tác của giảng viên
	lecturer := api.Group("")
	{
		lecturer.Use(middleware.RequireRoles("teacher", "admin"), middleware.DBMiddleware(db))
		lecturer.POST("/transcribe", transcribeCtrl.Transcribe)
		lecturer.POST("/summary", summaryCtrl.SummarizePage)
		lecturer.POST("/uploadZip", controllers.UploadZip)
	}

	r.GET("/ws/document/:id", ws.HandleDocumentWebSocket)
	r.GET("/ws/session/:id", ws.HandleSessionWebSocket)
	r.GET("/ws/status", ws.HandleGlobalWebSocket)

	return r
}

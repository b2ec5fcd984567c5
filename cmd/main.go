package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vnkhanh/e-classroom-backend/config"
	"github.com/vnkhanh/e-classroom-backend/routes"
	"github.com/vnkhanh/e-classroom-backend/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env")
	}

	config.InitDB()

	ctx := context.Background()

	// Client AI khởi tạo một lần cho cả process, truyền vào controller
	gemini, err := services.NewGeminiService(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Fatal("Không khởi tạo được Gemini client: ", err)
	}
	defer gemini.Close()

	speech, err := services.NewSpeechService(ctx)
	if err != nil {
		log.Fatal("Không khởi tạo được Speech-to-Text client: ", err)
	}
	defer speech.Close()

	r := gin.Default()

	//Bật CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Gọi SetupRouter để đăng ký route
	r = routes.SetupRouter(r, config.DB, gemini, speech)

	// Route test server
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Classroom server is running")
	})

	// Lấy PORT từ env
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // mặc định nếu không có PORT
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}

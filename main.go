package main

import (
	"fmt"
	"time"

	"safai/controller"
	"safai/model"
	"safai/platform"
	"safai/service"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

// TokenAuthMiddleware ...
// JWT Authentication middleware attached to each request that needs to be authenitcated to
// validate the access_token in the header
func TokenAuthMiddleware(auth *controller.AuthController) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.TokenValid(c)
		c.Next()
	}
}

func main() {
	fmt.Println("Server started...")

	//Load the .env file
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("failed to load the env file")
	}

	config := platform.LoadConfig()
	platform.InitLogger(config)

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	//init database
	platform.InitDB(config)
	model.InstallDB()

	platform.InitLLMClient(config)

	auth := controller.NewAuthController(config)
	user := controller.NewUserController(config)
	chat := controller.NewChatController(&service.GatewayService{})
	upload := controller.NewUploadController(config)

	r.POST("/signup", user.Signup)
	r.POST("/login", user.Login)
	r.GET("/verify-email", user.VerifyEmail)
	r.GET("/logout", auth.Logout)

	authed := r.Group("/", TokenAuthMiddleware(auth))
	{
		authed.GET("/", chat.Index)
		authed.GET("/conversation/:id", chat.GetConversation)
		authed.POST("/new-conversation", chat.NewConversation)
		authed.POST("/chat", chat.Chat)
		authed.POST("/deep-research", chat.DeepResearch)
		authed.GET("/research-notes", chat.ResearchNotes)
		authed.POST("/delete-conversation/:id", chat.DeleteConversation)
		authed.POST("/upload-file", upload.UploadFile)
		authed.GET("/uploads/:filename", upload.GetUpload)
	}

	c := cron.New()
	c.AddFunc("30 3 * * *", func() {
		service.CleanupStaleAccountsTask()
	})
	c.Start()

	r.Run(":" + config.Port)
}

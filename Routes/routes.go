package Routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/AnmolGhill/Halo/Controllers"
	"github.com/AnmolGhill/Halo/FirebaseAuth"
	"github.com/AnmolGhill/Halo/Gemini"
	"github.com/AnmolGhill/Halo/Middleware"
)

func ConfigRoutes(router *gin.Engine, ids FirebaseAuth.Identity, model Gemini.Generator, frontendDir string) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	authController := Controllers.NewAuthController(ids)
	chatbotController := Controllers.NewChatbotController(model)
	diagnosisController := Controllers.NewDiagnosisController(model)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "HALO Backend"})
	})

	router.POST("/get_diagnosis", diagnosisController.GetDiagnosis)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)

		protected := authGroup.Group("")
		protected.Use(Middleware.RequireAuth(ids))
		{
			protected.GET("/profile", authController.GetProfile)
			protected.PUT("/profile", authController.UpdateProfile)
			protected.DELETE("/account", authController.DeleteAccount)
		}
	}

	chatbot := router.Group("/api/chatbot")
	chatbot.Use(Middleware.OptionalAuth(ids))
	{
		chatbot.POST("/chat", chatbotController.Chat)
		chatbot.POST("/analyze-symptoms", chatbotController.AnalyzeSymptoms)
		chatbot.POST("/health-tips", chatbotController.HealthTips)
		chatbot.GET("/conversations", chatbotController.GetConversations)
		chatbot.GET("/conversations/:id", chatbotController.GetConversation)
		chatbot.DELETE("/conversations/:id", chatbotController.DeleteConversation)
		chatbot.GET("/symptom-history", chatbotController.GetSymptomHistory)
	}

	configStatic(router, frontendDir)
}

// configStatic serves the frontend bundle: the entry document at /, assets by
// path, and the entry document again for any unmatched non-API path so client
// routing works after a refresh.
func configStatic(router *gin.Engine, frontendDir string) {
	if frontendDir == "" {
		return
	}
	index := filepath.Join(frontendDir, "index.html")
	router.StaticFile("/", index)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not_found", "message": "Route not found"})
			return
		}
		// Clean under a rooted path so ".." can never escape the asset root.
		asset := filepath.Join(frontendDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(asset); err == nil && !info.IsDir() {
			c.File(asset)
			return
		}
		c.File(index)
	})
}

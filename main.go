package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnmolGhill/Halo/Config"
	"github.com/AnmolGhill/Halo/CronJobs"
	"github.com/AnmolGhill/Halo/FirebaseAuth"
	"github.com/AnmolGhill/Halo/Gemini"
	"github.com/AnmolGhill/Halo/Logger"
	"github.com/AnmolGhill/Halo/Models"
	"github.com/AnmolGhill/Halo/Routes"
)

func main() {
	cfg, err := Config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := Logger.Setup(cfg.LogLevel, cfg.LogFormat, "halo-backend"); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer Logger.L.Sync()

	ctx := context.Background()

	identity, err := FirebaseAuth.Setup(ctx, cfg)
	if err != nil {
		Logger.L.Fatal("firebase initialization failed", zap.Error(err))
	}

	model, err := Gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		Logger.L.Fatal("gemini initialization failed", zap.Error(err))
	}

	if err := Models.ConnectDataBase(cfg); err != nil {
		Logger.L.Fatal("database connection failed", zap.Error(err))
	}

	gin.SetMode(getEnv("GIN_MODE", "release"))
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))
	Routes.ConfigRoutes(router, identity, model, cfg.FrontendDir)

	retention := CronJobs.NewConversationRetention(cfg.RetentionDays)
	scheduler := retention.StartRetentionCron()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Writes must outlast the 30s model timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			Logger.L.Fatal("server error", zap.Error(err))
		}
	}()

	Logger.L.Info("server listening", zap.String("port", cfg.Port))
	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	Logger.L.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		Logger.L.Error("forced shutdown", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/codeamanwal/brysk/cmd"
	"github.com/codeamanwal/brysk/internal/container"
	"github.com/codeamanwal/brysk/internal/core/logger"
	"github.com/codeamanwal/brysk/internal/database"
	"github.com/codeamanwal/brysk/internal/middleware"
	"github.com/codeamanwal/brysk/internal/rate_limiter"
	"github.com/codeamanwal/brysk/internal/routes"
)

const requestTimeout = 60 * time.Second

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	sources, err := database.OpenSources()
	if err != nil {
		zapLogger.Fatal("connecting source databases", zap.Error(err))
	}
	defer sources.Close()

	zapLogger.Info("Connected to all source databases")

	appContainer := container.NewAppContainer(sources, zapLogger)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.TimeoutMiddleware(requestTimeout))
	router.Use(rate_limiter.NewRateLimiter(120, time.Minute).Middleware())

	routes.RegisterUtilityRoutes(router)
	routes.RegisterAPIRoutes(router, appContainer)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":5001"
	}
	if err := router.Run(host); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

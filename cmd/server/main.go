package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/princeprakhar/gold-marketplace/internal/api/routes"
	"github.com/princeprakhar/gold-marketplace/internal/config"
	"github.com/princeprakhar/gold-marketplace/internal/database"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger.Init()
	cfg := config.Load()

	db, err := database.Init(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Fatal("Failed to initialize database: ", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database: ", err)
		}
	}()

	deps := routes.Dependencies{}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to redis: ", err)
		}
		defer rdb.Close()
		deps.Redis = rdb
	}

	if cfg.S3BucketName != "" {
		s3Service, err := services.NewS3Service(cfg.S3Region, cfg.S3BucketName, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			logger.Fatal("Failed to initialize image storage: ", err)
		}
		deps.Storage = s3Service
	} else {
		logger.Warn("S3_BUCKET_NAME not set, image uploads are disabled")
	}

	if cfg.SMTPHost != "" {
		deps.Notifier = services.NewEmailService(cfg)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := routes.SetupRoutes(router, db, cfg, deps); err != nil {
		logger.Fatal("Failed to set up routes: ", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "environment": cfg.Environment}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: ", err)
	}
}

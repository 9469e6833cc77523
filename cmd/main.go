package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"complainthub/backend/internal/account"
	"complainthub/backend/internal/api/handler"
	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/config"
	"complainthub/backend/internal/logger"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/report"
	"complainthub/backend/internal/stats"
	"complainthub/backend/internal/storage"
)

func setupDependencies(cfg *config.Config, zlog *zap.Logger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// Surfaces unique-constraint violations as gorm.ErrDuplicatedKey so
		// the storage layer can translate them into validation errors.
		TranslateError: true,
	})
	if err != nil {
		zlog.Fatal("failed to connect PostgreSQL", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			zlog.Fatal("failed to connect Redis", zap.Error(err))
		}
	} else {
		zlog.Warn("REDIS_ADDR not set; token revocation and statistics cache disabled")
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.ConsumerProfile{},
		&models.CompanyProfile{},
		&models.AdministratorProfile{},
		&models.Complaint{},
		&models.Attachment{},
		&models.Response{},
		&models.CompanyStatistics{},
		&models.Report{},
	)
	if err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	zlog.Info("database connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "complainthub-backend")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, rdb := setupDependencies(cfg, zlog)

	s := storage.NewStorageService(db, rdb, zlog)
	authSvc := auth.NewService(s, rdb, cfg.JWTSecret, cfg.TokenTTL)
	accounts := account.NewService(s, zlog)
	aggregator := stats.NewAggregator(s, zlog)
	complaints := complaint.NewService(s, aggregator, cfg.UploadDir, zlog)
	reports := report.NewService(s, zlog)

	r := gin.Default()
	h := handler.NewHandler(authSvc, accounts, complaints, reports, s, zlog)

	api := r.Group("/api")
	api.POST("/consumers/register", h.RegisterConsumer)
	api.POST("/companies/register", h.RegisterCompany)
	api.POST("/login", h.Login)

	authed := api.Group("", h.RequireIdentity)
	authed.POST("/logout", h.Logout)

	authed.GET("/consumers/me", h.GetOwnConsumerProfile)
	authed.GET("/companies/me", h.GetOwnCompanyProfile)
	authed.PUT("/companies/me", h.UpdateOwnCompanyProfile)
	authed.GET("/companies", h.ListCompanies)
	authed.GET("/companies/:id/statistics", h.GetCompanyStatistics)

	authed.POST("/complaints", h.CreateComplaint)
	authed.GET("/complaints", h.ListComplaints)
	authed.GET("/complaints/:id", h.GetComplaint)
	authed.POST("/complaints/:id/close", h.CloseComplaint)
	authed.POST("/complaints/:id/responses", h.CreateResponse)

	authed.POST("/reports", h.CreateReport)
	authed.GET("/reports", h.ListReports)
	authed.GET("/reports/:id", h.GetReport)
	authed.DELETE("/reports/:id", h.DeleteReport)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	zlog.Info("starting HTTP server", zap.String("addr", cfg.ListenAddr))
	if err := server.ListenAndServe(); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

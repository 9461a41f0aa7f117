package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/promptpix/promptpix/internal/auth"
	"github.com/promptpix/promptpix/internal/clipdrop"
	"github.com/promptpix/promptpix/internal/config"
	"github.com/promptpix/promptpix/internal/database"
	"github.com/promptpix/promptpix/internal/httpapi"
	"github.com/promptpix/promptpix/internal/razorpay"
	"github.com/promptpix/promptpix/internal/repository"
	"github.com/promptpix/promptpix/internal/service"
	"github.com/promptpix/promptpix/internal/storage"
	"github.com/promptpix/promptpix/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	planRepo := repository.NewPlanRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	clipdropClient := clipdrop.NewClient(cfg, logr)
	razorpayClient := razorpay.NewClient(cfg)

	var mirror service.ImageMirror
	if cfg.S3Enabled() {
		uploader, err := storage.NewUploader(storage.Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
			UsePathStyle:  cfg.S3UsePathStyle,
			Prefix:        cfg.S3Prefix,
		})
		if err != nil {
			log.Fatalf("storage uploader: %v", err)
		}
		mirror = uploader
	}

	authService := service.NewAuthService(cfg, userRepo, tokens)
	planService := service.NewPlanService(planRepo)
	generationService := service.NewGenerationService(logr, userRepo, imageRepo, clipdropClient, mirror)
	imageService := service.NewImageService(imageRepo)
	paymentService := service.NewPaymentService(logr, razorpayClient, transactionRepo, userRepo, planService, cfg.PaymentCurrency)

	if err := planService.EnsureDefaults(ctx); err != nil {
		log.Fatalf("ensure plans: %v", err)
	}

	server := httpapi.NewServer(cfg, logr, tokens, authService, generationService, imageService, planService, paymentService)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("server stopped", "err", err)
	}
}

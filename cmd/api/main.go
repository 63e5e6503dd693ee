package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/stockwise/inventory-system/docs"
	"github.com/stockwise/inventory-system/internal/api"
	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/service"
	"github.com/stockwise/inventory-system/internal/infrastructure/config"
	mongodb "github.com/stockwise/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/stockwise/inventory-system/internal/infrastructure/db/redis"
	"github.com/stockwise/inventory-system/internal/infrastructure/mail"
	"github.com/stockwise/inventory-system/internal/infrastructure/queue"
	"github.com/stockwise/inventory-system/pkg/logger"
)

// @title           Inventory Management API
// @version         1.0
// @description     Role-based inventory management service: products, categories, users and stock notifications.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "inventory-api",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting inventory api")

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	// --- Repositories ---
	categoryRepo := mongodb.NewCategoryRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)

	if err := categoryRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("category indexes failed")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("product indexes failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	if err := seedRoles(ctx, roleRepo); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	// --- Notifications ---
	var mailer service.EmailSender
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPSender(
			cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password,
			log,
		)
	} else {
		log.Warn().Msg("SMTP_HOST not set, notifications will be logged only")
	}

	notificationSvc := service.NewNotificationService(productRepo, mailer, cfg.SMTP.AlertRecipient, log)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notificationSvc, log)
	dispatcher.Start(ctx)

	// --- Services ---
	categorySvc := service.NewCategoryService(categoryRepo, productRepo, log)
	productSvc := service.NewProductService(productRepo, categoryRepo, dispatcher, log)
	userSvc := service.NewUserService(userRepo, roleRepo, log)
	loginGuard := redisdb.NewLoginGuard(redisClient, cfg.LoginGuard.MaxAttempts, cfg.LoginGuard.Window)
	authSvc := service.NewAuthService(userRepo, userSvc, loginGuard, cfg.JWTSecret, cfg.TokenTTL, log)

	// --- HTTP server ---
	e := api.NewRouter(api.RouterConfig{
		DB:         db,
		Redis:      redisClient,
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
		Categories: categorySvc,
		Products:   productSvc,
		Users:      userSvc,
		Auth:       authSvc,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("inventory api stopped")
}

// seedRoles populates the role catalogue on first boot. Existing roles are
// never modified.
func seedRoles(ctx context.Context, roles *mongodb.RoleRepository) error {
	count, err := roles.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return roles.CreateAll(ctx, domain.DefaultRoles())
}

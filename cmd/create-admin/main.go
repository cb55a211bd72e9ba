package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/config"
	"github.com/Ishan007-bot/Sports-Arena-Backend/db"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
	"github.com/Ishan007-bot/Sports-Arena-Backend/services"
)

// create-admin seeds the administrator account from ADMIN_USERNAME,
// ADMIN_EMAIL and ADMIN_PASSWORD. Running it again is a no-op.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.DefaultOptions(), logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConn.Close()

	authService := services.NewAuthService(repositories.NewPostgresUserRepository(dbConn), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	admin, created, err := authService.EnsureAdmin(ctx, services.RegisterInput{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		logger.Error("failed to create admin user", slog.Any("error", err))
		dbConn.Close()
		os.Exit(1)
	}

	if !created {
		logger.Info("admin user already exists", slog.Int("user_id", admin.ID), slog.String("email", admin.Email))
		return
	}
	logger.Info("admin user created", slog.Int("user_id", admin.ID), slog.String("email", admin.Email))
	if cfg.AdminPassword == "admin123" {
		logger.Warn("admin account uses the default password, change it after first login")
	}
}

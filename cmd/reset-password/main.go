package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go-inventory-api/internal/config"
	"go-inventory-api/internal/logging"
	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/database"

	"go.uber.org/zap"
)

const minPasswordLength = 6

func main() {
	email := flag.String("email", os.Getenv("RESET_EMAIL"), "email of the account to reset")
	password := flag.String("password", os.Getenv("RESET_PASSWORD"), "new password (min 6 characters)")
	flag.Parse()

	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := resetPassword(context.Background(), cfg, *email, *password, log); err != nil {
		log.Fatal("password reset failed", zap.Error(err))
	}
}

func resetPassword(ctx context.Context, cfg *config.Config, email, password string, log *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("-email is required")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("-password must be at least %d characters", minPasswordLength)
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, false)
	if err != nil {
		return err
	}
	users := repository.NewUserRepo(db)

	// 3. Find user
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user %s not found: %w", email, err)
	}

	// 4. Hash new password
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// 5. Update
	if err := users.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	log.Info("password reset", zap.String("email", email))
	return nil
}

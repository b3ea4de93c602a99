package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-inventory-api/internal/config"
	"go-inventory-api/internal/events"
	"go-inventory-api/internal/handler"
	"go-inventory-api/internal/logging"
	"go-inventory-api/internal/messaging"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/router"
	"go-inventory-api/internal/service"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/database"
	"go-inventory-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, !cfg.IsProduction())
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info("database ready")

	// 3. Seed admin user
	userRepo := repository.NewUserRepo(db)
	if err := seedAdmin(ctx, userRepo, cfg.Seed, log); err != nil {
		log.Warn("admin seed failed", zap.Error(err))
	}

	// 4. Setup WebSocket Hub and event stream
	wsHub := ws.NewHub(log.Named("ws"))
	go wsHub.Run(ctx)

	publishers := events.Multi{wsHub}
	if cfg.Kafka.Enabled() {
		producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Named("kafka"))
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warn("kafka producer close failed", zap.Error(err))
			}
		}()
		publishers = append(publishers, producer)
		log.Info("kafka publishing enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	historyRepo := repository.NewStockHistoryRepo(db)
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpire)

	ledgerService := service.NewStockLedgerService(db, productRepo, historyRepo, publishers, log.Named("ledger"))
	productService := service.NewProductService(db, productRepo, historyRepo, publishers, log.Named("products"), cfg.Inventory.DefaultImageURL)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, log.Named("categories"))
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.AllowAdminRegistration, log.Named("auth"))
	dashService := service.NewDashboardService(productRepo, categoryRepo, historyRepo, cfg.Inventory.LowStockThreshold)

	if cfg.Auth.AllowAdminRegistration {
		log.Warn("public admin registration is enabled, set ALLOW_ADMIN_REGISTRATION=false to close it")
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Inventory API",
		ErrorHandler: handler.ErrorHandler(log),
	})
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	router.Setup(app, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(authService),
		Product:      handler.NewProductHandler(productService, cfg.Inventory.LowStockThreshold),
		Category:     handler.NewCategoryHandler(categoryService),
		StockHistory: handler.NewStockHistoryHandler(ledgerService),
		Dashboard:    handler.NewDashboardHandler(dashService),
	}, authService, wsHub, log)

	// 8. Graceful Shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// seedAdmin creates the configured admin account once. Nothing happens when
// SEED_ADMIN_EMAIL is unset or the account already exists.
func seedAdmin(ctx context.Context, users repository.UserRepository, seed config.SeedConfig, log *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if email == "" {
		return nil
	}
	if seed.AdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD is required when SEED_ADMIN_EMAIL is set")
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &model.User{Name: "Administrator", Email: email, IsAdmin: true}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(seed.AdminPassword); err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("admin user created", zap.String("email", email))
	return nil
}

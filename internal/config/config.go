package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-super-secret-key-change-in-production"

// Config holds every runtime setting of the API process.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Inventory InventoryConfig
	Kafka     KafkaConfig
	Seed      SeedConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

type AuthConfig struct {
	JWTSecret string
	JWTExpire time.Duration
	// AllowAdminRegistration keeps the public admin sign-up route open.
	AllowAdminRegistration bool
}

type InventoryConfig struct {
	LowStockThreshold int
	DefaultImageURL   string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether stock events should be streamed to Kafka.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* variables.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.TimeZone,
	)
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, the real environment still applies
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds a Config from v after registering defaults and env bindings.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	brokers := []string{}
	for _, b := range strings.Split(v.GetString("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Auth: AuthConfig{
			JWTSecret:              v.GetString("JWT_SECRET"),
			JWTExpire:              v.GetDuration("JWT_EXPIRE"),
			AllowAdminRegistration: v.GetBool("ALLOW_ADMIN_REGISTRATION"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
			DefaultImageURL:   v.GetString("DEFAULT_IMAGE_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Seed: SeedConfig{
			AdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "inventory_management")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRE", "720h")
	v.SetDefault("ALLOW_ADMIN_REGISTRATION", true)
	v.SetDefault("LOW_STOCK_THRESHOLD", 10)
	v.SetDefault("DEFAULT_IMAGE_URL", "/images/default-product.jpg")
	v.SetDefault("KAFKA_TOPIC", "stock-events")
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be changed in production")
	}
	if c.Auth.JWTExpire <= 0 {
		return errors.New("JWT_EXPIRE must be a positive duration")
	}
	if c.Inventory.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD cannot be negative")
	}
	return nil
}

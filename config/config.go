package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Flutterwave FlutterwaveConfig
	AMQP        AMQPConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

// FlutterwaveConfig holds the payment provider credentials. WebhookHash is
// the shared secret the provider echoes back in the verif-hash header.
type FlutterwaveConfig struct {
	BaseURL     string
	SecretKey   string
	WebhookHash string
}

// AMQPConfig configures the event publisher. Leave URL empty to disable
// publishing (events are dropped, not buffered).
type AMQPConfig struct {
	URL      string
	Exchange string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8090"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "collegedate:collegedate@tcp(localhost:3306)/collegedate?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret: getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			AccessExpiry: 15 * time.Minute,
			Issuer:       "collegedate",
		},
		Flutterwave: FlutterwaveConfig{
			BaseURL:     getenv("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com"),
			SecretKey:   getenv("FLUTTERWAVE_SECRET_KEY", ""),
			WebhookHash: getenv("FLUTTERWAVE_WEBHOOK_HASH", ""),
		},
		AMQP: AMQPConfig{
			URL:      getenv("AMQP_URL", ""),
			Exchange: getenv("AMQP_EXCHANGE", "collegedate.events"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int       `env:"LOG_LEVEL" envDefault:"0"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Database  Database  `envPrefix:"DATABASE_"`
	JWT       JWT       `envPrefix:"JWT_"`
	Auth      Auth      `envPrefix:"AUTH_"`
	Storage   Storage   `envPrefix:"MINIO_"`
	CORS      CORS      `envPrefix:"CORS_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Address            string        `env:"ADDRESS" envDefault:":8080"`
	EnableHTTPS        bool          `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string        `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string        `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Database contains database connection parameters.
// An empty URL selects the in-memory backend unless Required is set.
type Database struct {
	URL          string        `env:"URL"`
	Required     bool          `env:"REQUIRED" envDefault:"false"`
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"2s"`
}

// JWT contains JWT-related parameters.
type JWT struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Auth contains password hashing parameters.
type Auth struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Storage contains object storage parameters for item photos.
// An empty endpoint keeps photos in memory.
type Storage struct {
	Endpoint      string `env:"ENDPOINT"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	Bucket        string `env:"BUCKET_NAME" envDefault:"lostfound-photos"`
	UseSSL        bool   `env:"USE_SSL" envDefault:"false"`
	MaxPhotoBytes int64  `env:"MAX_PHOTO_BYTES" envDefault:"5242880"`
}

// CORS contains cross-origin parameters.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// RateLimit contains global request rate limiting parameters.
type RateLimit struct {
	RPS   float64 `env:"RPS" envDefault:"50"`
	Burst int     `env:"BURST" envDefault:"100"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

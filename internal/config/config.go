package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11" // struct-tag driven env parsing
	"github.com/joho/godotenv"    // optional .env file loading for local runs
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  It is built once at start-up and handed to the
// components that need it; nothing reads the environment after Load returns.
type Config struct {
	Env  string `env:"APP_ENV"` // application environment (development/production)
	Mode string `env:"MODE"`    // legacy name for APP_ENV, used when APP_ENV is unset
	Port string `env:"PORT" envDefault:"5000"`

	DBUser string `env:"DB_USER,required,notEmpty"`
	DBPass string `env:"DB_PASS"` // empty allowed
	DBHost string `env:"DB_HOST" envDefault:"localhost"`
	DBPort string `env:"DB_PORT" envDefault:"3306"`
	DBName string `env:"DB_NAME" envDefault:"wizonblogs"`

	AdminEmail    string `env:"ADMIN_EMAIL,required,notEmpty"`
	AdminPassword string `env:"ADMIN_PASSWORD,required,notEmpty"`
	BcryptCost    int    `env:"BCRYPT_COST" envDefault:"10"`

	JWTSecret    string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"wizon-admin"`
	JWTAudience  string        `env:"JWT_AUDIENCE" envDefault:"wizon-dashboard"`

	OriginClient string `env:"ORIGIN_CLIENT"` // allowed cross-origin client address
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	RabbitMQURL  string `env:"RABBITMQ_URL"` // empty disables event publishing

	Mail MailConfig
}

// MailConfig carries the SMTP transport credentials and the address that
// receives contact-form notifications.
type MailConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"465"`
	User     string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
	To       string `env:"TO_EMAIL"`
	FromName string `env:"EMAIL_FROM_NAME" envDefault:"Wizon Web"`
}

// devOrigin is the local front-end dev server allowed when running in development.
const devOrigin = "http://localhost:5173"

// Load reads an optional .env file, then parses the environment into a
// Config.  Missing required variables are reported together in one error.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is normal outside local development

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Env == "" {
		cfg.Env = cfg.Mode
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be a positive duration")
	}
	if strings.TrimSpace(c.JWTIssuer) == "" || strings.TrimSpace(c.JWTAudience) == "" {
		return errors.New("JWT_ISSUER and JWT_AUDIENCE must not be blank")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST out of range: %d", c.BcryptCost)
	}
	// credentialed CORS needs one concrete origin outside development
	if !c.IsDevelopment() && strings.TrimSpace(c.OriginClient) == "" {
		return fmt.Errorf("ORIGIN_CLIENT is required when APP_ENV=%s", c.Env)
	}
	return nil
}

// IsDevelopment reports whether the service runs in local development mode.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// AllowedOrigin returns the single origin allowed to make credentialed
// cross-site requests.
func (c Config) AllowedOrigin() string {
	if c.IsDevelopment() {
		return devOrigin
	}
	return c.OriginClient
}

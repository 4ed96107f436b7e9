package config

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Mail     MailConfig
	Files    FilesConfig
	Receipt  ReceiptConfig
	Log      LogConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	DSN        string
	Migrations bool // run embedded SQL migrations instead of AutoMigrate
	Seed       bool
	Debug      bool
}

// MailConfig carries the submission endpoint and the sender credentials.
// Credentials may be empty; the transport rejects a send without them.
type MailConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	TimeoutSeconds int
}

// HasCredentials reports whether both the sending address and the password are set.
func (m MailConfig) HasCredentials() bool {
	return strings.TrimSpace(m.Username) != "" && m.Password != ""
}

type FilesConfig struct {
	Root string
}

// ReceiptsDir is where generated receipts are written.
func (f FilesConfig) ReceiptsDir() string { return filepath.Join(f.Root, "receipts") }

// ClientFilesDir holds one folder per client.
func (f FilesConfig) ClientFilesDir() string { return filepath.Join(f.Root, "ClientFiles") }

type ReceiptConfig struct {
	Currency           string
	AllowNegativeTotal bool
	Open               bool
}

type LogConfig struct {
	Level     string
	Formatter string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file > default.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not loaded, using environment variables: %v", err)
	}
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "product-organizer")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "database.db")
	v.SetDefault("MIGRATIONS", false)
	v.SetDefault("DB_SEED", true)
	v.SetDefault("DB_DEBUG", false)
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_TIMEOUT", 30)
	v.SetDefault("APP_EMAIL", "")
	v.SetDefault("APP_PASSWORD", "")
	v.SetDefault("FILES_DIR", "files")
	v.SetDefault("RECEIPT_CURRENCY", "$")
	v.SetDefault("RECEIPT_ALLOW_NEGATIVE_TOTAL", false)
	v.SetDefault("RECEIPT_OPEN", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMATTER", "text")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:        v.GetString("DATABASE_DSN"),
			Migrations: v.GetBool("MIGRATIONS"),
			Seed:       v.GetBool("DB_SEED"),
			Debug:      v.GetBool("DB_DEBUG"),
		},
		Mail: MailConfig{
			Host:           v.GetString("SMTP_HOST"),
			Port:           v.GetInt("SMTP_PORT"),
			Username:       v.GetString("APP_EMAIL"),
			Password:       v.GetString("APP_PASSWORD"),
			TimeoutSeconds: v.GetInt("SMTP_TIMEOUT"),
		},
		Files: FilesConfig{
			Root: v.GetString("FILES_DIR"),
		},
		Receipt: ReceiptConfig{
			Currency:           v.GetString("RECEIPT_CURRENCY"),
			AllowNegativeTotal: v.GetBool("RECEIPT_ALLOW_NEGATIVE_TOTAL"),
			Open:               v.GetBool("RECEIPT_OPEN"),
		},
		Log: LogConfig{
			Level:     v.GetString("LOG_LEVEL"),
			Formatter: v.GetString("LOG_FORMATTER"),
		},
	}
}

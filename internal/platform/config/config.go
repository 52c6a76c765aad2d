package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Addr        string
	Environment string
	LogLevel    string

	DataDir       string
	DocumentsDir  string
	StorageDriver string
	SQLitePath    string
	DatabaseURL   string

	DataEncryptionKey string
	AssetsDir         string
	PDFFontPath       string

	CompanyName      string
	CompanyAddress   string
	CurrencySymbol   string
	WatermarkEnabled bool

	OperatorPasscodeHash string
	OperatorTOTPSecret   string
	JWTSecret            string
	SessionTTL           time.Duration
	DownloadLinkTTL      time.Duration

	ShareDir string

	EmailEnabled   bool
	EmailFrom      string
	EmailDefaultTo string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	SMTPUseTLS     bool

	MaxBodyBytes      int64
	MetricsEnabled    bool
	LoginRateLimit    int
	TempSweepInterval time.Duration
	ShutdownTimeout   time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")
	return Config{
		Addr:                 getEnv("APP_ADDR", "127.0.0.1:8080"),
		Environment:          getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DataDir:              dataDir,
		DocumentsDir:         getEnv("DOCUMENTS_DIR", filepath.Join(dataDir, "documents")),
		StorageDriver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		SQLitePath:           getEnv("SQLITE_PATH", filepath.Join(dataDir, "store.db")),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		DataEncryptionKey:    getEnv("DATA_ENCRYPTION_KEY", ""),
		AssetsDir:            getEnv("ASSETS_DIR", ""),
		PDFFontPath:          getEnv("PDF_FONT_PATH", ""),
		CompanyName:          getEnv("COMPANY_NAME", "Source One"),
		CompanyAddress:       getEnv("COMPANY_ADDRESS", ""),
		CurrencySymbol:       getEnv("CURRENCY_SYMBOL", "₹"),
		WatermarkEnabled:     getEnvBool("WATERMARK_ENABLED", true),
		OperatorPasscodeHash: getEnv("OPERATOR_PASSCODE_HASH", ""),
		OperatorTOTPSecret:   getEnv("OPERATOR_TOTP_SECRET", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		SessionTTL:           getEnvDuration("SESSION_TTL", 8*time.Hour),
		DownloadLinkTTL:      getEnvDuration("DOWNLOAD_LINK_TTL", 15*time.Minute),
		ShareDir:             getEnv("SHARE_DIR", ""),
		EmailEnabled:         getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:            getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailDefaultTo:       getEnv("EMAIL_DEFAULT_TO", ""),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:           getEnvBool("SMTP_USE_TLS", true),
		MaxBodyBytes:         int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		LoginRateLimit:       getEnvInt("LOGIN_RATE_LIMIT", 10),
		TempSweepInterval:    getEnvDuration("TEMP_SWEEP_INTERVAL", time.Hour),
		ShutdownTimeout:      getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthEnabled reports whether requests must carry an operator session.
func (c Config) AuthEnabled() bool {
	return strings.TrimSpace(c.OperatorPasscodeHash) != ""
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageFile, StorageSQLite, StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of file, sqlite, postgres, memory")
	}
	if strings.TrimSpace(c.DocumentsDir) == "" {
		return fmt.Errorf("DOCUMENTS_DIR must not be empty")
	}
	if c.IsProduction() {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
	}
	if c.AuthEnabled() && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set when OPERATOR_PASSCODE_HASH is set")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.DownloadLinkTTL <= 0 {
		return fmt.Errorf("DOWNLOAD_LINK_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}

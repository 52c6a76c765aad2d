package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		StorageDriver:   StorageFile,
		DocumentsDir:    "data/documents",
		MaxBodyBytes:    1 << 20,
		DownloadLinkTTL: 15 * time.Minute,
		SessionTTL:      8 * time.Hour,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/payslips")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("WATERMARK_ENABLED", "not-a-bool")
	cfg := Load()
	if cfg.DocumentsDir != "/tmp/payslips/documents" {
		t.Fatalf("unexpected documents dir %q", cfg.DocumentsDir)
	}
	if cfg.StorageDriver != StorageSQLite {
		t.Fatalf("expected lower-cased driver, got %q", cfg.StorageDriver)
	}
	if !cfg.WatermarkEnabled {
		t.Fatal("expected fallback for invalid bool")
	}
	if cfg.CompanyName != "Source One" || cfg.CurrencySymbol != "₹" {
		t.Fatalf("unexpected company defaults %q %q", cfg.CompanyName, cfg.CurrencySymbol)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(*Config){
		"STORAGE_DRIVER":    func(c *Config) { c.StorageDriver = "redis" },
		"DATABASE_URL":      func(c *Config) { c.StorageDriver = StoragePostgres },
		"JWT_SECRET":        func(c *Config) { c.Environment = "production" },
		"MAX_BODY_BYTES":    func(c *Config) { c.MaxBodyBytes = 10 },
		"DOWNLOAD_LINK_TTL": func(c *Config) { c.DownloadLinkTTL = 0 },
		"SMTP_HOST":         func(c *Config) { c.EmailEnabled = true },
	}
	for want, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error mentioning %s, got %v", want, err)
		}
	}
}

func TestValidateAuthNeedsSecret(t *testing.T) {
	cfg := validConfig()
	cfg.OperatorPasscodeHash = "$2a$10$abcdefghijklmnopqrstuv"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
	cfg.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

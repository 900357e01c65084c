package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HMACSecret != InsecureDefaultSecret {
		t.Errorf("default secret = %q", cfg.HMACSecret)
	}
	if cfg.FreshnessWindowMS != 120000 {
		t.Errorf("default freshness = %d, want 120000", cfg.FreshnessWindowMS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("development defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SESSION_HMAC_SECRET", "super-secret")
	t.Setenv("ATTENDANCE_FRESHNESS_MS", "60000")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HMACSecret != "super-secret" {
		t.Errorf("secret = %q", cfg.HMACSecret)
	}
	if cfg.FreshnessWindowMS != 60000 {
		t.Errorf("freshness = %d", cfg.FreshnessWindowMS)
	}
	if got := cfg.Addr(); !strings.HasSuffix(got, ":9090") {
		t.Errorf("addr = %q", got)
	}
}

func TestValidateProductionRejectsDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("production with default SESSION_HMAC_SECRET should fail validation")
	}

	t.Setenv("SESSION_HMAC_SECRET", "real-secret")
	cfg, _ = Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("production with real secret should validate: %v", err)
	}
}

func TestDatabaseURLEscapesPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "p@ss/word")
	cfg, _ := Load()
	url := cfg.DatabaseURL()
	if strings.Contains(url, "p@ss/word") {
		t.Errorf("password not escaped in %q", url)
	}
	if !strings.HasPrefix(url, "postgres://") {
		t.Errorf("url = %q", url)
	}
}

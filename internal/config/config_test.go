package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Import.MaxUploadSize != 10*1024 {
		t.Errorf("Expected 10KB upload limit, got %d", cfg.Import.MaxUploadSize)
	}
	if cfg.Generator.MaxCount != 100 {
		t.Errorf("Expected max generate count 100, got %d", cfg.Generator.MaxCount)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("Expected 1h token TTL, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Expected empty redis address, got %q", cfg.Redis.Addr)
	}
	if cfg.Seed.Enabled {
		t.Error("Seeding should be disabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_SIZE", "2048")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("SEED_DEFAULT_USERS", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Import.MaxUploadSize != 2048 {
		t.Errorf("Expected upload limit 2048, got %d", cfg.Import.MaxUploadSize)
	}
	if cfg.Auth.TokenTTL != 15*time.Minute {
		t.Errorf("Expected 15m TTL, got %s", cfg.Auth.TokenTTL)
	}
	if !cfg.Seed.Enabled {
		t.Error("Expected seeding enabled")
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected redis address override, got %q", cfg.Redis.Addr)
	}
	// unparsable values fall back to defaults
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("Expected default max open conns, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when JWT_SECRET is missing")
	}
}

func TestLoadForMigrations_IgnoresAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_NAME", "migrations_db")

	cfg, err := LoadForMigrations()
	if err != nil {
		t.Fatalf("LoadForMigrations() failed: %v", err)
	}
	if cfg.Database.Name != "migrations_db" {
		t.Errorf("Expected DB_NAME override, got %s", cfg.Database.Name)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database:  DatabaseConfig{Host: "localhost", Name: "users"},
			Auth:      AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
			Generator: GeneratorConfig{MaxCount: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing db host", func(c *Config) { c.Database.Host = "" }, true},
		{"missing db name", func(c *Config) { c.Database.Name = "" }, true},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"zero max count", func(c *Config) { c.Generator.MaxCount = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := &DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=n sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

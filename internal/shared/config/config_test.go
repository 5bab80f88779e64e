package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WORKER_POOL_SIZE", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Galaxy.SiteCount != 256 {
		t.Errorf("SiteCount = %d, want 256", cfg.Galaxy.SiteCount)
	}
	if cfg.Galaxy.Density != 0.25 {
		t.Errorf("Density = %v, want 0.25", cfg.Galaxy.Density)
	}
	if cfg.Galaxy.HeightDistribution != "beta" || cfg.Galaxy.MassTransform != "area_density" {
		t.Errorf("unexpected enums %q %q", cfg.Galaxy.HeightDistribution, cfg.Galaxy.MassTransform)
	}
	if cfg.Galaxy.SystemScale != 0.4 {
		t.Errorf("SystemScale = %v, want 0.4", cfg.Galaxy.SystemScale)
	}
	if cfg.Worker.PoolSize != 3 {
		t.Errorf("PoolSize = %d, want 3", cfg.Worker.PoolSize)
	}
	if cfg.Worker.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.Worker.PollInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GALAXY_SITE_COUNT", "50")
	t.Setenv("GALAXY_ROOT_SEED", "0x2a")
	t.Setenv("GALAXY_MASS_SCALE", "2.5")
	t.Setenv("GENERATION_POLL_INTERVAL_MS", "16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Galaxy.SiteCount != 50 || cfg.Galaxy.RootSeed != "0x2a" || cfg.Galaxy.MassScale != 2.5 {
		t.Errorf("overrides not applied: %+v", cfg.Galaxy)
	}
	if cfg.Worker.PollInterval != 16*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.Worker.PollInterval)
	}
}

func TestLoadRejectsInvalidWorker(t *testing.T) {
	t.Setenv("WORKER_POOL_SIZE", "0")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "WORKER_POOL_SIZE") {
		t.Errorf("expected WORKER_POOL_SIZE error, got %v", err)
	}
}

func TestValidateServer(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr string
	}{
		{"missing secret", "", "JWT_SECRET is required"},
		{"short secret", "short", "at least 32"},
		{"valid", strings.Repeat("s", 32), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := load()
			cfg.Auth.JWTSecret = tt.secret

			err := cfg.validateServer()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConnectionString(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "stellaris", SSLMode: "disable",
	}}

	want := "host=db port=5432 user=u password=p dbname=stellaris sslmode=disable"
	if got := cfg.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}

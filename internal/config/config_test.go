package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "session secret") {
		t.Fatalf("expected a missing secret error, got %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != DriverMongo {
		t.Errorf("expected mongo driver, got %q", cfg.Database.Driver)
	}
	if cfg.Session.TTL != "24h" || cfg.Session.CookieName != "coursenotes_session" {
		t.Errorf("unexpected session defaults %+v", cfg.Session)
	}
	if cfg.Storage.MaxUploadBytes != 20<<20 {
		t.Errorf("expected 20MiB upload limit, got %d", cfg.Storage.MaxUploadBytes)
	}
	if cfg.DatabaseURL() != "mongodb://localhost:27017" {
		t.Errorf("unexpected default url %q", cfg.DatabaseURL())
	}

	cfg.Database.Driver = DriverPostgres
	if !strings.HasPrefix(cfg.DatabaseURL(), "postgres://") {
		t.Errorf("unexpected postgres default url %q", cfg.DatabaseURL())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  driver: mongo
  name: notesdb
session:
  secret: from-file
  ttl: 2h
storage:
  driver: local
  path: /tmp/notes
  minio:
    bucket: filebucket
`)
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "mongodb://db:27017")
	t.Setenv("STORAGE_MAX_UPLOAD_BYTES", "1024")
	t.Setenv("MINIO_BUCKET", "envbucket")
	t.Setenv("DB_FAIL_FAST", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port from file, got %q", cfg.Server.Port)
	}
	if cfg.Session.Secret != "from-env" {
		t.Errorf("expected secret from env, got %q", cfg.Session.Secret)
	}
	if cfg.Session.TTL != "2h" {
		t.Errorf("expected ttl from file, got %q", cfg.Session.TTL)
	}
	if cfg.DatabaseURL() != "mongodb://db:27017" || cfg.Database.Name != "notesdb" {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Storage.MaxUploadBytes != 1024 {
		t.Errorf("expected upload limit 1024, got %d", cfg.Storage.MaxUploadBytes)
	}
	if cfg.Storage.MinIO.Bucket != "envbucket" {
		t.Errorf("expected nested env override, got %q", cfg.Storage.MinIO.Bucket)
	}
	if !cfg.Database.FailFast {
		t.Error("expected fail_fast from env")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "database driver"},
		{"unknown session store", func(c *Config) { c.Session.Store = "file" }, "session store"},
		{"unknown storage driver", func(c *Config) { c.Storage.Driver = "ftp" }, "storage driver"},
		{"minio without endpoint", func(c *Config) { c.Storage.Driver = StorageMinIO }, "minio endpoint"},
		{"bad ttl", func(c *Config) { c.Session.TTL = "one day" }, "session ttl"},
		{"zero upload limit", func(c *Config) { c.Storage.MaxUploadBytes = 0 }, "max_upload_bytes"},
		{"valid memory", func(c *Config) { c.Database.Driver = DriverMemory }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			cfg.Session.Secret = "secret"
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInvalidEnvValue(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("REDIS_DB", "not-a-number")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a non-numeric REDIS_DB")
	}
}

func TestApplyEnvWithLookup(t *testing.T) {
	env := map[string]string{
		"PORT":                  "8081",
		"LOG_LEVEL":             "   ",
		"MINIO_CREATE_BUCKET":   " true ",
		"DB_MAX_OPEN_CONNS":     "7",
		"SESSION_SECRET":        " keep spaces ",
		"UNRELATED_ENV_SETTING": "x",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := NewDefault()
	if err := applyEnv(cfg, lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8081" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("blank variable should keep the default, got %q", cfg.Logging.Level)
	}
	if !cfg.Storage.MinIO.CreateBucket {
		t.Error("nested bool not applied")
	}
	if cfg.Database.MaxOpenConns != 7 {
		t.Errorf("max open conns = %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Session.Secret != " keep spaces " {
		t.Errorf("strings must be taken verbatim, got %q", cfg.Session.Secret)
	}

	if err := applyEnv(*cfg, lookup); err == nil {
		t.Error("expected an error for a non-pointer destination")
	}
}

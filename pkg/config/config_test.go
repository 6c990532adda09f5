package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with no file should succeed: %v", err)
	}

	if cfg.ArchiveDir != DefaultArchiveDir {
		t.Errorf("expected archive dir %q, got %q", DefaultArchiveDir, cfg.ArchiveDir)
	}
	if cfg.DBPath != DefaultDBPath {
		t.Errorf("expected db path %q, got %q", DefaultDBPath, cfg.DBPath)
	}
	if cfg.APIPort != DefaultAPIPort {
		t.Errorf("expected port %d, got %d", DefaultAPIPort, cfg.APIPort)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("expected server url %q, got %q", DefaultServerURL, cfg.ServerURL)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("unexpected log defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `archive_dir: /var/lib/pharmvault/backups
db_path: /var/lib/pharmvault/pharmvault.db
api_port: 9000
log_format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ArchiveDir != "/var/lib/pharmvault/backups" {
		t.Errorf("archive_dir not read from file: %q", cfg.ArchiveDir)
	}
	if cfg.APIPort != 9000 {
		t.Errorf("api_port not read from file: %d", cfg.APIPort)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("log_format not read from file: %q", cfg.LogFormat)
	}
	// Fields absent from the file keep their defaults.
	if cfg.APIHost != DefaultAPIHost {
		t.Errorf("api_host should default, got %q", cfg.APIHost)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ArchiveDir: "backups",
			DBPath:     "pharmvault.db",
			APIHost:    "0.0.0.0",
			APIPort:    8240,
			ServerURL:  DefaultServerURL,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty archive dir", func(c *Config) { c.ArchiveDir = "" }, true},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"port zero", func(c *Config) { c.APIPort = 0 }, true},
		{"port too high", func(c *Config) { c.APIPort = 70000 }, true},
		{"empty server url", func(c *Config) { c.ServerURL = "" }, true},
		{"cert without key", func(c *Config) { c.SSLCert = "cert.pem" }, true},
		{"key without cert", func(c *Config) { c.SSLKey = "key.pem" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateSSLPair(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "cert.pem")
	key := filepath.Join(dir, "key.pem")
	for _, f := range []string{cert, key} {
		if err := os.WriteFile(f, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cfg := Config{
		ArchiveDir: "backups",
		DBPath:     "pharmvault.db",
		APIPort:    8240,
		ServerURL:  DefaultServerURL,
		SSLCert:    cert,
		SSLKey:     key,
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("existing cert/key pair should validate: %v", err)
	}

	cfg.SSLKey = filepath.Join(dir, "missing.pem")
	if err := cfg.Validate(); err == nil {
		t.Error("missing key file should fail validation")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  listen_address: "0.0.0.0:8080"
  read_timeout: "60s"

detector:
  min_text_length: 150
  profile:
    mode: "file"
    file_path: "./profile.yaml"
    watch: true

audit:
  enabled: true
  backend: "sqlite"
  sqlite:
    path: "./test-audit.db"

telemetry:
  logging:
    level: "debug"
    format: "text"
  metrics:
    enabled: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:8080" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:8080", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout %v, got %v", 60*time.Second, cfg.Server.ReadTimeout)
	}
	if cfg.Detector.MinTextLength != 150 {
		t.Errorf("expected min text length 150, got %d", cfg.Detector.MinTextLength)
	}
	if cfg.Detector.Profile.Mode != "file" {
		t.Errorf("expected profile mode %q, got %q", "file", cfg.Detector.Profile.Mode)
	}
	if !cfg.Detector.Profile.Watch {
		t.Error("expected profile watch to be enabled")
	}
	if cfg.Audit.Backend != "sqlite" {
		t.Errorf("expected audit backend %q, got %q", "sqlite", cfg.Audit.Backend)
	}
	if cfg.Audit.SQLite.Path != "./test-audit.db" {
		t.Errorf("expected audit db path %q, got %q", "./test-audit.db", cfg.Audit.SQLite.Path)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("server: [not a mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("expected default listen address %q, got %q", DefaultListenAddress, cfg.Server.ListenAddress)
	}
	if cfg.Server.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	}
	if cfg.Detector.MinTextLength != DefaultMinTextLength {
		t.Errorf("expected default min text length %d, got %d", DefaultMinTextLength, cfg.Detector.MinTextLength)
	}
	if cfg.Detector.Profile.Mode != DefaultProfileMode {
		t.Errorf("expected default profile mode %q, got %q", DefaultProfileMode, cfg.Detector.Profile.Mode)
	}
	if cfg.Audit.Enabled {
		t.Error("audit must be disabled by default")
	}
	if cfg.Audit.Backend != DefaultAuditBackend {
		t.Errorf("expected default audit backend %q, got %q", DefaultAuditBackend, cfg.Audit.Backend)
	}
	if cfg.Audit.Retention.PruneSchedule != DefaultAuditRetentionSchedule {
		t.Errorf("expected default prune schedule %q, got %q", DefaultAuditRetentionSchedule, cfg.Audit.Retention.PruneSchedule)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("expected default logging level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Logging.RedactPII {
		t.Error("PII redaction must default on")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("tracing must be disabled by default")
	}
	if cfg.Security.TLS.MinVersion != DefaultTLSMinVersion {
		t.Errorf("expected default TLS min version %q, got %q", DefaultTLSMinVersion, cfg.Security.TLS.MinVersion)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)
	first := cfg
	ApplyDefaults(&cfg)
	if !reflect.DeepEqual(cfg.Server, first.Server) || cfg.Audit.Retention != first.Audit.Retention {
		t.Error("ApplyDefaults is not idempotent")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "empty listen address",
			mutate:  func(cfg *Config) { cfg.Server.ListenAddress = "" },
			wantErr: "server.listen_address",
		},
		{
			name:    "unknown profile mode",
			mutate:  func(cfg *Config) { cfg.Detector.Profile.Mode = "ftp" },
			wantErr: "detector.profile.mode",
		},
		{
			name: "git mode without repository",
			mutate: func(cfg *Config) {
				cfg.Detector.Profile.Mode = "git"
				cfg.Detector.Profile.Git.Repository = ""
			},
			wantErr: "detector.profile.git.repository",
		},
		{
			name: "watch without file mode",
			mutate: func(cfg *Config) {
				cfg.Detector.Profile.Mode = "builtin"
				cfg.Detector.Profile.Watch = true
			},
			wantErr: "detector.profile.watch",
		},
		{
			name:    "unknown audit backend",
			mutate:  func(cfg *Config) { cfg.Audit.Backend = "cassandra" },
			wantErr: "audit.backend",
		},
		{
			name:    "invalid prune schedule",
			mutate:  func(cfg *Config) { cfg.Audit.Retention.PruneSchedule = "every tuesday" },
			wantErr: "audit.retention.prune_schedule",
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *Config) { cfg.Telemetry.Logging.Level = "verbose" },
			wantErr: "telemetry.logging.level",
		},
		{
			name: "tracing enabled without endpoint",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Tracing.Enabled = true
				cfg.Telemetry.Tracing.Endpoint = ""
			},
			wantErr: "telemetry.tracing.endpoint",
		},
		{
			name: "tls without cert",
			mutate: func(cfg *Config) {
				cfg.Security.TLS.Enabled = true
			},
			wantErr: "security.tls.cert_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention field %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VERITAS_SERVER_LISTEN_ADDRESS", "0.0.0.0:9090")
	t.Setenv("VERITAS_DETECTOR_MIN_TEXT_LENGTH", "200")
	t.Setenv("VERITAS_AUDIT_ENABLED", "true")
	t.Setenv("VERITAS_TELEMETRY_LOGGING_LEVEL", "warn")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  listen_address: \"127.0.0.1:8080\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigWithEnvOverrides(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("env override not applied: listen address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Detector.MinTextLength != 200 {
		t.Errorf("env override not applied: min text length = %d", cfg.Detector.MinTextLength)
	}
	if !cfg.Audit.Enabled {
		t.Error("env override not applied: audit not enabled")
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("env override not applied: logging level = %q", cfg.Telemetry.Logging.Level)
	}
}

func TestSetAndGetConfig(t *testing.T) {
	original := GetConfig()
	t.Cleanup(func() { SetConfig(original) })

	cfg := DefaultConfig()
	cfg.Server.ListenAddress = "10.0.0.1:1234"
	SetConfig(cfg)

	got := GetConfig()
	if got == nil || got.Server.ListenAddress != "10.0.0.1:1234" {
		t.Error("SetConfig/GetConfig did not round-trip")
	}
}

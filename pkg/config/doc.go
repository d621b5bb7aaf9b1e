// Package config provides configuration management for the Veritas service.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention VERITAS_SECTION_FIELD.
// For example:
//
//   - VERITAS_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - VERITAS_DETECTOR_PROFILE_MODE overrides detector.profile.mode
//   - VERITAS_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Server.ListenAddress)
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., profile file path when mode is "file")
//   - Range validation (e.g., sample ratio must lie in [0, 1])
//   - Format validation (e.g., prune schedule must be a cron expression)
//   - Logical validation (e.g., TLS requires certificate and key files)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - detector.profile.git.repository: repository URL is required when mode is "git"
//	  - security.tls.cert_file: certificate file is required when TLS is enabled
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	server:
//	  listen_address: "127.0.0.1:8080"
//
//	detector:
//	  min_text_length: 100
//	  profile:
//	    mode: "file"
//	    file_path: "./profile.yaml"
//	    watch: true
//
//	audit:
//	  enabled: true
//	  backend: "sqlite"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config

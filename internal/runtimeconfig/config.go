package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrLanguagesRequired indicates the language registry was configured empty.
var ErrLanguagesRequired = errors.New("catalog config: at least one supported language is required")

// ErrDefaultLanguageRequired indicates no default language was configured.
var ErrDefaultLanguageRequired = errors.New("catalog config: default language is required")

// ErrDefaultLanguageUnsupported ensures the default stays inside the registry.
var ErrDefaultLanguageUnsupported = errors.New("catalog config: default language must be one of the supported languages")

// ErrStorageDriverUnknown indicates an unsupported storage driver selection.
var ErrStorageDriverUnknown = errors.New("catalog config: storage driver is invalid")

var ErrStorageDSNRequired = errors.New("catalog config: storage dsn is required")
var ErrLoggingProviderUnknown = errors.New("catalog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("catalog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("catalog config: logging format is invalid")
var ErrCacheTTLInvalid = errors.New("catalog config: cache ttl must be zero or positive")

// Storage driver identifiers accepted by the DI container.
const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Logging provider identifiers accepted by the DI container.
const (
	LoggingProviderNoop     = "noop"
	LoggingProviderGoLogger = "gologger"
)

// Config aggregates feature flags and adapter bindings for the catalog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	I18N     I18NConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	Features Features
}

// I18NConfig declares the process-wide language registry. Languages are fixed
// for the lifetime of the module; changing them is an operational event.
type I18NConfig struct {
	Languages []string
	Default   string
}

// StorageConfig selects the relational backend the repositories run against.
type StorageConfig struct {
	Driver      string
	DSN         string
	AutoMigrate bool
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger bool
	Cache  bool
}

// DefaultConfig returns the baseline configuration used by embedded deployments.
func DefaultConfig() Config {
	return Config{
		I18N: I18NConfig{
			Languages: []string{"en", "ka", "ru"},
			Default:   "en",
		},
		Storage: StorageConfig{
			Driver:      StorageDriverSQLite,
			DSN:         "file::memory:?cache=shared",
			AutoMigrate: true,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Provider: LoggingProviderNoop,
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate checks cross-field consistency before the container boots.
func (c Config) Validate() error {
	languages := make([]string, 0, len(c.I18N.Languages))
	for _, code := range c.I18N.Languages {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			languages = append(languages, strings.ToLower(trimmed))
		}
	}
	if len(languages) == 0 {
		return ErrLanguagesRequired
	}

	def := strings.ToLower(strings.TrimSpace(c.I18N.Default))
	if def == "" {
		return ErrDefaultLanguageRequired
	}
	found := false
	for _, code := range languages {
		if code == def {
			found = true
			break
		}
	}
	if !found {
		return ErrDefaultLanguageUnsupported
	}

	driver := strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch driver {
	case "", StorageDriverSQLite, StorageDriverPostgres:
	default:
		return ErrStorageDriverUnknown
	}
	if driver == StorageDriverPostgres && strings.TrimSpace(c.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}

	if c.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}

	if c.Features.Logger {
		switch strings.ToLower(strings.TrimSpace(c.Logging.Provider)) {
		case LoggingProviderNoop, LoggingProviderGoLogger:
		default:
			return ErrLoggingProviderUnknown
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
		case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		default:
			return ErrLoggingLevelInvalid
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
		case "", "json", "console", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}

	return nil
}

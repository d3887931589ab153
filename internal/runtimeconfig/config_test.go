package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateLanguages(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.I18N.Languages = nil
	if err := cfg.Validate(); !errors.Is(err, ErrLanguagesRequired) {
		t.Fatalf("expected ErrLanguagesRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.I18N.Languages = []string{"  ", ""}
	if err := cfg.Validate(); !errors.Is(err, ErrLanguagesRequired) {
		t.Fatalf("expected ErrLanguagesRequired for blank codes, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.I18N.Default = ""
	if err := cfg.Validate(); !errors.Is(err, ErrDefaultLanguageRequired) {
		t.Fatalf("expected ErrDefaultLanguageRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.I18N.Default = "de"
	if err := cfg.Validate(); !errors.Is(err, ErrDefaultLanguageUnsupported) {
		t.Fatalf("expected ErrDefaultLanguageUnsupported, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.I18N.Default = "EN "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default language should match case-insensitively: %v", err)
	}
}

func TestValidateStorage(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Storage.Driver = "oracle"
	if err := cfg.Validate(); !errors.Is(err, ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Storage.Driver = StorageDriverPostgres
	cfg.Storage.DSN = " "
	if err := cfg.Validate(); !errors.Is(err, ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestValidateCacheAndLogging(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.DefaultTTL = -time.Second
	if err := cfg.Validate(); !errors.Is(err, ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "zap"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = LoggingProviderGoLogger
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Provider = "zap"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("logging options are ignored while the feature is off: %v", err)
	}
}

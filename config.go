package catalog

import "github.com/unitedcompany2026/estate-catalog/internal/runtimeconfig"

var (
	ErrLanguagesRequired          = runtimeconfig.ErrLanguagesRequired
	ErrDefaultLanguageRequired    = runtimeconfig.ErrDefaultLanguageRequired
	ErrDefaultLanguageUnsupported = runtimeconfig.ErrDefaultLanguageUnsupported
	ErrStorageDriverUnknown       = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config        = runtimeconfig.Config
	I18NConfig    = runtimeconfig.I18NConfig
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

// Storage driver identifiers accepted by the DI container.
const (
	StorageDriverSQLite   = runtimeconfig.StorageDriverSQLite
	StorageDriverPostgres = runtimeconfig.StorageDriverPostgres
)

// Logging provider identifiers accepted by the DI container.
const (
	LoggingProviderNoop     = runtimeconfig.LoggingProviderNoop
	LoggingProviderGoLogger = runtimeconfig.LoggingProviderGoLogger
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

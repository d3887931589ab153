package logging

import (
	"maps"

	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

// WithFields returns a logger that stamps the given structured fields on every
// entry, when the implementation supports the FieldsLogger extension. The map
// is cloned so later caller mutations never leak into log output. Loggers
// without the extension, nil loggers, and empty field maps pass through
// unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}

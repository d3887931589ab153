package logging

import (
	"context"

	"github.com/unitedcompany2026/estate-catalog/pkg/interfaces"
)

const (
	rootModule         = "catalog"
	i18nModule         = "catalog.i18n"
	listingsModule     = "catalog.listings"
	developmentsModule = "catalog.developments"
	partnersModule     = "catalog.partners"
	slidesModule       = "catalog.slides"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// I18NLogger returns the logger namespace reserved for the translation engine.
func I18NLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, i18nModule)
}

// ListingsLogger returns the logger namespace reserved for listing services.
func ListingsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, listingsModule)
}

// DevelopmentsLogger returns the logger namespace reserved for development services.
func DevelopmentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, developmentsModule)
}

// PartnersLogger returns the logger namespace reserved for partner services.
func PartnersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, partnersModule)
}

// SlidesLogger returns the logger namespace reserved for slide services.
func SlidesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, slidesModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

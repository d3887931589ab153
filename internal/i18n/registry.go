package i18n

import "strings"

// Registry is the immutable, process-wide set of supported language codes plus
// the designated default. It is built once at boot and never mutated; entities
// seeded under an older registry are tolerated and repaired lazily.
type Registry struct {
	languages []string
	index     map[string]struct{}
	def       string
}

// NewRegistry normalizes the supplied codes (trimmed, lower-cased) and
// validates that the default is one of them. Order is preserved.
func NewRegistry(languages []string, defaultLanguage string) (*Registry, error) {
	normalized := make([]string, 0, len(languages))
	index := make(map[string]struct{}, len(languages))
	for _, code := range languages {
		trimmed := NormalizeLanguage(code)
		if trimmed == "" {
			continue
		}
		if _, ok := index[trimmed]; ok {
			return nil, ErrDuplicateLanguage
		}
		index[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	if len(normalized) == 0 {
		return nil, ErrLanguagesRequired
	}

	def := NormalizeLanguage(defaultLanguage)
	if def == "" {
		return nil, ErrLanguageRequired
	}
	if _, ok := index[def]; !ok {
		return nil, ErrDefaultNotRegistered
	}

	return &Registry{languages: normalized, index: index, def: def}, nil
}

// MustNewRegistry panics on invalid input. Intended for fixed boot-time wiring.
func MustNewRegistry(languages []string, defaultLanguage string) *Registry {
	registry, err := NewRegistry(languages, defaultLanguage)
	if err != nil {
		panic(err)
	}
	return registry
}

// Languages returns the registry codes in configuration order.
func (r *Registry) Languages() []string {
	out := make([]string, len(r.languages))
	copy(out, r.languages)
	return out
}

// Default returns the default language code.
func (r *Registry) Default() string {
	return r.def
}

// Contains reports whether code is a registry language.
func (r *Registry) Contains(code string) bool {
	_, ok := r.index[NormalizeLanguage(code)]
	return ok
}

// Missing returns the registry languages absent from have, in registry order.
// Codes outside the registry are ignored; repair never removes them.
func (r *Registry) Missing(have []string) []string {
	present := make(map[string]struct{}, len(have))
	for _, code := range have {
		present[NormalizeLanguage(code)] = struct{}{}
	}

	missing := make([]string, 0)
	for _, code := range r.languages {
		if _, ok := present[code]; !ok {
			missing = append(missing, code)
		}
	}
	return missing
}

// NormalizeLanguage applies the canonical code normalization used across the
// engine: whitespace trimmed, lower-cased.
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

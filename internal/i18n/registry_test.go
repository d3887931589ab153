package i18n

import (
	"errors"
	"testing"
)

func TestNewRegistryNormalizesAndValidates(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry([]string{" EN ", "ka", "RU"}, "en")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	languages := registry.Languages()
	if len(languages) != 3 {
		t.Fatalf("expected 3 languages, got %d", len(languages))
	}
	for i, want := range []string{"en", "ka", "ru"} {
		if languages[i] != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, languages[i])
		}
	}
	if registry.Default() != "en" {
		t.Fatalf("expected default en, got %q", registry.Default())
	}
	if !registry.Contains("KA") {
		t.Fatal("Contains should normalize its input")
	}
	if registry.Contains("de") {
		t.Fatal("de is not registered")
	}
}

func TestNewRegistryRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(nil, "en"); !errors.Is(err, ErrLanguagesRequired) {
		t.Fatalf("expected ErrLanguagesRequired, got %v", err)
	}
	if _, err := NewRegistry([]string{"en", "EN"}, "en"); !errors.Is(err, ErrDuplicateLanguage) {
		t.Fatalf("expected ErrDuplicateLanguage, got %v", err)
	}
	if _, err := NewRegistry([]string{"en", "ka"}, "de"); !errors.Is(err, ErrDefaultNotRegistered) {
		t.Fatalf("expected ErrDefaultNotRegistered, got %v", err)
	}
}

func TestRegistryLanguagesReturnsCopy(t *testing.T) {
	t.Parallel()

	registry := MustNewRegistry([]string{"en", "ka"}, "en")
	languages := registry.Languages()
	languages[0] = "xx"

	if registry.Languages()[0] != "en" {
		t.Fatal("mutating the returned slice must not affect the registry")
	}
}

func TestRegistryMissingPreservesRegistryOrder(t *testing.T) {
	t.Parallel()

	registry := MustNewRegistry([]string{"en", "ka", "ru"}, "en")

	missing := registry.Missing([]string{"RU"})
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing languages, got %d", len(missing))
	}
	if missing[0] != "en" || missing[1] != "ka" {
		t.Fatalf("expected registry order [en ka], got %v", missing)
	}

	if missing := registry.Missing([]string{"en", "ka", "ru", "de"}); len(missing) != 0 {
		t.Fatalf("extra languages must not create gaps, got %v", missing)
	}
}

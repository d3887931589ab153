package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrLanguagesRequired        = errors.New("i18n: at least one language is required")
	ErrDuplicateLanguage        = errors.New("i18n: duplicate language code")
	ErrDefaultNotRegistered     = errors.New("i18n: default language must be a registry language")
	ErrLanguageRequired         = errors.New("i18n: language code is required")
	ErrParentIDRequired         = errors.New("i18n: parent id is required")
	ErrRowMismatch              = errors.New("i18n: translation row does not match the target parent and language")
	ErrDefaultLanguageProtected = errors.New("i18n: default language translation cannot be deleted")
	ErrStoreRequired            = errors.New("i18n: translation store is required")
	ErrRegistryRequired         = errors.New("i18n: language registry is required")
	ErrRowFactoryRequired       = errors.New("i18n: descriptor requires a row factory")
)

// NotFoundError represents missing records from store lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

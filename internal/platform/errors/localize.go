package errors

import (
	"errors"

	"github.com/louisbranch/plush/internal/platform/errors/i18n"
)

// DefaultLocale is the locale used when none is configured.
const DefaultLocale = i18n.BaseLocale

// Localize renders err for a user in locale. Domain errors go through the
// message catalog with their metadata, then the en-US catalog when the locale has no
// template. Any other error falls back to err.Error().
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	code := string(appErr.Code)
	if msg, ok := i18n.GetCatalog(locale).Message(code, appErr.Metadata); ok {
		return msg
	}
	if msg, ok := i18n.GetCatalog(DefaultLocale).Message(code, appErr.Metadata); ok {
		return msg
	}
	return err.Error()
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

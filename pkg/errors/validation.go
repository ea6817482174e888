package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds display names and identifiers accepted from users.
const maxNameLength = 256

// ValidateName validates a display name typed by a user before it is
// resolved against a dataset.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidateID validates a record identifier supplied by a user (for example
// an explicit --source-id flag or an API query parameter).
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > maxNameLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxNameLength)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid characters: %q", id)
		}
	}
	return nil
}

// ValidateSource validates a dataset source string: a directory, a SQLite
// file, or a MongoDB URI.
func ValidateSource(source string) error {
	if source == "" {
		return New(ErrCodeInvalidSource, "dataset source cannot be empty")
	}
	if strings.ContainsRune(source, '\x00') {
		return New(ErrCodeInvalidSource, "dataset source contains a null byte")
	}
	return nil
}

package errors

import (
	"strings"
	"unicode"
)

// ValidateShapeID validates a shape identity taken from an interchange
// document. Identities are opaque to the engine but are echoed back in error
// messages and HTTP responses, so control characters are rejected.
//
// The validation rules are intentionally conservative:
//   - No empty identities
//   - No control characters
//   - Maximum length of 256 characters
func ValidateShapeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "shape id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "shape id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "shape id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path: the -o output of the CLI or a config
// file location.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No trailing separator
func ValidatePath(path string) error {
	if err := validatePathChars(path); err != nil {
		return err
	}
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}
	return nil
}

// ValidateDir validates a directory path such as the cache dir. It applies
// the rules of [ValidatePath] except that a trailing separator is allowed.
func ValidateDir(path string) error {
	return validatePathChars(path)
}

func validatePathChars(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

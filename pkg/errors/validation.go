package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a config or output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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

// styleBreakers are sequences that would escape an inline style attribute or
// a CSS declaration block.
var styleBreakers = []string{
	";",  // Declaration separator
	"{",  // Block open
	"}",  // Block close
	"<",  // Tag open
	">",  // Tag close
	"\"", // Attribute quote
	"\x00",
}

// ValidateStyleValue validates a caller-supplied CSS value (colors, custom
// properties) that is written into inline style attributes.
func ValidateStyleValue(field, value string) error {
	if value == "" {
		return nil
	}
	if len(value) > 256 {
		return New(ErrCodeInvalidStyle, "%s too long (max 256 characters)", field)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStyle, "%s contains control characters", field)
		}
	}
	for _, pattern := range styleBreakers {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidStyle, "%s contains invalid characters: %q", field, pattern)
		}
	}
	return nil
}

// classNameRegex matches a single CSS class name.
var classNameRegex = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// ValidateClassName validates a single CSS class name.
func ValidateClassName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidStyle, "class name cannot be empty")
	}
	if !classNameRegex.MatchString(name) {
		return New(ErrCodeInvalidStyle, "invalid class name: %q", name)
	}
	return nil
}

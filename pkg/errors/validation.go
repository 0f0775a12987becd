package errors

import (
	"strings"
	"unicode"
)

// ValidateWord validates a word key from a frequency mapping.
// Words become SVG text content and log fields, so the rules are
// intentionally conservative:
//   - No empty words
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateWord(word string) error {
	if word == "" {
		return New(ErrCodeInvalidWord, "word cannot be empty")
	}

	if len(word) > 256 {
		return New(ErrCodeInvalidWord, "word too long (max 256 characters)")
	}

	for _, r := range word {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidWord, "word contains invalid control characters")
		}
	}

	return nil
}

// ValidateBasename validates an output file basename.
// It ensures the basename is a simple name without path components, so
// the visualizer cannot be steered outside its save directory.
func ValidateBasename(basename string) error {
	if basename == "" {
		return New(ErrCodeInvalidInput, "output basename cannot be empty")
	}

	if strings.ContainsAny(basename, "/\\") {
		return New(ErrCodeInvalidInput, "output basename cannot contain path separators")
	}

	if strings.Contains(basename, "..") {
		return New(ErrCodeInvalidInput, "output basename cannot contain path traversal sequences (..)")
	}

	for _, r := range basename {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output basename contains invalid characters")
		}
	}

	return nil
}

// ValidateTagName validates a HED tag string used as a template entry or
// counts key. Tags share the word rules but additionally reject leading
// and trailing whitespace, which always indicates a malformed source file.
func ValidateTagName(tag string) error {
	if err := ValidateWord(tag); err != nil {
		return err
	}

	if strings.TrimSpace(tag) != tag {
		return New(ErrCodeInvalidWord, "tag cannot have leading or trailing whitespace: %q", tag)
	}

	return nil
}

package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//
// Absolute paths are allowed: the CLI reads files the user names directly.
// The HTTP API never accepts paths.
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

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// edgeTypeRegex matches edge type labels: letters, digits and a few
// separators, starting with a letter or digit.
var edgeTypeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)

// ValidateEdgeType validates an edge type label read from external input.
func ValidateEdgeType(t string) error {
	if t == "" {
		return New(ErrCodeInvalidInput, "edge type cannot be empty")
	}
	if len(t) > 64 {
		return New(ErrCodeInvalidInput, "edge type too long (max 64 characters)")
	}
	if !edgeTypeRegex.MatchString(t) {
		return New(ErrCodeInvalidInput, "invalid edge type: %q", t)
	}
	return nil
}

// ValidateMotifName validates a motif display name.
func ValidateMotifName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMotif, "motif name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidMotif, "motif name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMotif, "motif name contains invalid control characters")
		}
	}
	return nil
}

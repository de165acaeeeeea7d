package errors

import (
	"strings"
	"unicode"
)

// idSeparator is the byte the engine uses internally to join the member ids
// of merged clusters. Node ids containing it would collide with cluster
// identities, so it is rejected at the boundary.
const idSeparator = "\x1f"

// ValidateNodeID validates a node id from an untrusted document.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No reserved separator bytes
//   - Maximum length of 256 characters
//
// Structural validation (duplicates, dangling links) is done by the engine.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNode, "node id too long (max 256 characters)")
	}

	if strings.Contains(id, idSeparator) {
		return New(ErrCodeInvalidNode, "node id contains a reserved separator byte")
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateDocumentFilename validates a document filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDocument, "document filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidDocument, "document filename cannot contain path separators")
	}

	// No hidden files (starting with .)
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidDocument, "document filename cannot be a hidden file")
	}

	return nil
}

// ValidateLayoutID validates a saved-layout id from an untrusted request.
//
// Validation rules:
//   - Id cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators (ids are used in lookups, never as paths,
//     but rejecting them keeps log lines and URLs unambiguous)
func ValidateLayoutID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "layout id cannot be empty")
	}

	const maxIDLength = 128
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "layout id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "layout id contains invalid characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "layout id cannot contain path separators")
	}

	return nil
}

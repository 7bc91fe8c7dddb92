package models

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxUserIDLength is the upper bound on identifier length
const MaxUserIDLength = 50

// userIDRegex restricts identifiers to letters, digits, underscore and hyphen
var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidationError describes a single field validation failure
type ValidationError struct {
	Field   string
	Message string
	Value   string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUserID checks an untrusted identifier against the contract rules.
// It returns the trimmed identifier on success and a ValidationError naming
// the specific violation otherwise. Pure, no I/O.
func ValidateUserID(userID string) (string, error) {
	trimmed := strings.TrimSpace(userID)

	if trimmed == "" {
		return "", &ValidationError{
			Field:   "user_id",
			Message: "'user_id' cannot be empty or contain only whitespace.",
			Value:   userID,
		}
	}

	if len(trimmed) > MaxUserIDLength {
		return "", &ValidationError{
			Field:   "user_id",
			Message: fmt.Sprintf("'user_id' must be %d characters or less.", MaxUserIDLength),
			Value:   userID,
		}
	}

	if !userIDRegex.MatchString(trimmed) {
		return "", &ValidationError{
			Field:   "user_id",
			Message: "'user_id' contains invalid characters. Only letters, numbers, underscores, and hyphens are allowed.",
			Value:   userID,
		}
	}

	return trimmed, nil
}

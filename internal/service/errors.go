package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors shared by the services. Handlers translate these into
// HTTP status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidToken     = errors.New("invalid token")
)

// ValidationError is a rule violation scoped to a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// GORM translates driver errors when TranslateError is enabled, but the
// raw driver message is also matched so that races surface as validation
// failures rather than 500s regardless of dialect.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed") ||
		strings.Contains(msg, "duplicate key")
}

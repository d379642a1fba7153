package service

import (
	"errors"
	"strings"
)

var (
	// ErrPersistence wraps a failed write of the primary transaction row.
	ErrPersistence = errors.New("failed to persist transaction")
	// ErrLookupMiss marks a soft miss (category, staff, client or service)
	// that only skips the step that needed it.
	ErrLookupMiss                  = errors.New("lookup miss")
	ErrTransactionNotFound         = errors.New("transaction not found")
	ErrTransactionAlreadyCancelled = errors.New("transaction already cancelled")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any write when a request is rejected.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

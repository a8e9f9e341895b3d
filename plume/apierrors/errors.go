// plume/apierrors/errors.go
package apierrors

import (
	"fmt"
	"strings"
)

// FieldError is the {field, message} pair returned to clients for
// recoverable input problems.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every rule violation found in a payload.
// Validation never stops at the first failure.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validation wraps a non-empty error list into a *ValidationError,
// or returns nil so callers can do `if err := Validation(...); err != nil`.
func Validation(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// NotFoundError maps to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NotFound(message string) error { return &NotFoundError{Message: message} }

// ConflictError maps to 400: the resource (email, username) already exists.
// Either Message or Errors is set depending on what the endpoint reports.
type ConflictError struct {
	Message string
	Errors  []FieldError
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Errors) > 0 {
		return e.Errors[0].Message
	}
	return "conflict"
}

// AuthError maps to 401: missing/invalid credential or bad password.
type AuthError struct {
	Message string
	Errors  []FieldError
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Errors) > 0 {
		return e.Errors[0].Message
	}
	return "unauthorized"
}

// UploadError maps to 400 and is raised at the multipart-decoding stage,
// before schema validation runs (wrong file type, too many files).
type UploadError struct {
	Message string
	Errors  []FieldError
}

func (e *UploadError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Errors) > 0 {
		return e.Errors[0].Message
	}
	return "upload rejected"
}

// PartialDeleteError reports a coupled row+file removal where the database
// row is gone but the stored file could not be removed (or vice versa).
// The two must succeed together or the operation is inconsistent.
type PartialDeleteError struct {
	URL        string
	RowDeleted bool
	Err        error
}

func (e *PartialDeleteError) Error() string {
	side := "row"
	if e.RowDeleted {
		side = "file"
	}
	return fmt.Sprintf("partial delete of %s: %s removal failed: %v", e.URL, side, e.Err)
}

func (e *PartialDeleteError) Unwrap() error { return e.Err }

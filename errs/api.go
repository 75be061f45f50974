package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common error sentinel values
var (
	ErrBadRequest     = errors.New("malformed request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInternal       = errors.New("internal server error")
	ErrDuplicateSlug  = errors.New("A blog post with this slug already exists")
	ErrDuplicateEmail = errors.New("A user with this email already exists")
)

type ApiErr struct {
	StatusCode int
	err        error
	Details    string       // Additional details about the error
	Fields     []FieldError // Per-field validation failures, if any
	Cause      error        // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// Message returns the top-level message without details, suitable for the
// response envelope.
func (e *ApiErr) Message() string {
	return e.err.Error()
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// NewNotFoundError reports a missing entity. The message leads the envelope,
// e.g. "Blog post not found", so the entity name is capitalized here.
func NewNotFoundError(entity string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: fmt.Errorf("%s %w", capitalize(entity), ErrNotFound)}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: errors.New(message)}
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, err: fmt.Errorf("%w: %s", ErrUnauthorized, message)}
}

func NewInternalError(message string, cause error) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, err: errors.New(message), Cause: cause}
}

// NewDuplicateSlugError reports a slug uniqueness violation. The admin panel
// expects this as a plain 400, not a 409.
func NewDuplicateSlugError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: ErrDuplicateSlug}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateSlug(err error) bool {
	return errors.Is(err, ErrDuplicateSlug)
}

func IsDuplicateEmail(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

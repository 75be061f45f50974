package errs

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldError is a single (field, message) pair from input validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// NewValidationError bundles every violated field into one 400 response so the
// client can show all problems at once.
func NewValidationError(fields []FieldError) *ApiErr {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.String())
	}

	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrBadRequest,
		Details:    strings.Join(msgs, "; "),
		Fields:     fields,
	}
}

func Malformed(payloadName string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, payloadName+" malformed")
}

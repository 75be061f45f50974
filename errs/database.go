package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError translates a gorm/driver error into an ApiErr with the
// right status code. Unique-index violations on the slug column are the
// store's last line of defense against concurrent creates, so they surface as
// duplicate-slug rather than a generic 500.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		if errors.Is(cause, gorm.ErrRecordNotFound) {
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        fmt.Errorf("%s %w", capitalize(entity), ErrNotFound),
				Details:    details,
				Cause:      cause,
			}
		}

		if isUniqueViolation(cause) {
			// The only unique indexes are blog_posts.slug and users.email, so
			// the entity decides which duplicate the client hears about.
			duplicate := ErrDuplicateSlug
			if entity == "user" {
				duplicate = ErrDuplicateEmail
			}
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        duplicate,
				Details:    details,
				Cause:      cause,
			}
		}

		if strings.Contains(cause.Error(), "connection") {
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

// isUniqueViolation matches the messages emitted by the postgres driver
// (SQLSTATE 23505) and by sqlite, which the repo tests run against.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

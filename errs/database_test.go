package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDatabaseErrorUniqueViolationPerEntity(t *testing.T) {
	uniqueErr := errors.New(`UNIQUE constraint failed: blog_posts.slug`)

	postErr := NewDatabaseError("create", "blog post", uniqueErr)
	assert.Equal(t, http.StatusBadRequest, postErr.StatusCode)
	assert.True(t, IsDuplicateSlug(postErr))
	assert.Equal(t, "A blog post with this slug already exists", postErr.Message())

	// A racing duplicate email must not surface as a slug collision.
	userErr := NewDatabaseError("create", "user", errors.New(`UNIQUE constraint failed: users.email`))
	assert.Equal(t, http.StatusBadRequest, userErr.StatusCode)
	assert.False(t, IsDuplicateSlug(userErr))
	assert.True(t, IsDuplicateEmail(userErr))
	assert.Equal(t, "A user with this email already exists", userErr.Message())
}

func TestNewDatabaseErrorRecordNotFound(t *testing.T) {
	err := NewDatabaseError("find", "blog post", gorm.ErrRecordNotFound)

	require.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Blog post not found", err.Message())
}

func TestNewNotFoundErrorCapitalizesEntity(t *testing.T) {
	err := NewNotFoundError("blog post")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Blog post not found", err.Message())
	assert.True(t, IsNotFound(err))
}

func TestNewDatabaseErrorFallsBackToInternal(t *testing.T) {
	err := NewDatabaseError("update", "blog post", errors.New("disk I/O error"))

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.False(t, IsNotFound(err))
	assert.False(t, IsDuplicateSlug(err))
}

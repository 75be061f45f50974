package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	body := strings.NewReader("fake png bytes")
	url, err := store.Upload(context.Background(), "cover.png", "image/png", body, int64(body.Len()))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"), "url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "url %q", url)

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestLocalStoreRejectsUnsupportedType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "notes.pdf", "application/pdf", strings.NewReader("%PDF"), 4)
	assert.Error(t, err)
}

func TestLocalStoreRejectsOversizedFile(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "huge.jpg", "image/jpeg", strings.NewReader("x"), MaxImageSize+1)
	assert.Error(t, err)
}

func TestLocalStoreExtensionFollowsContentType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	// The stored name comes from the content type, never the client filename.
	url, err := store.Upload(context.Background(), "../../escape.html", "image/webp", strings.NewReader("riff"), 4)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".webp"), "url %q", url)
	assert.NotContains(t, url, "..")
}

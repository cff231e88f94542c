package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/media",
	})
	assert.NoError(t, err)
	return s
}

func TestLocalWriteReadRoundTrip(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	content := "image bytes"
	err := s.Write(ctx, "posts/1/pic.png", strings.NewReader(content), int64(len(content)), "image/png")
	assert.NoError(t, err)

	rc, err := s.Read(ctx, "posts/1/pic.png")
	assert.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLocalExistsAndDelete(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	assert.NoError(t, s.Write(ctx, "posts/2/pic.png", strings.NewReader("x"), 1, "image/png"))

	exists, err := s.Exists(ctx, "posts/2/pic.png")
	assert.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, s.Delete(ctx, "posts/2/pic.png"))

	exists, err = s.Exists(ctx, "posts/2/pic.png")
	assert.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	assert.NoError(t, s.Delete(ctx, "posts/2/pic.png"))
}

func TestLocalGetURLUsesBaseURL(t *testing.T) {
	s := newLocal(t)

	url, err := s.GetURL(context.Background(), "posts/3/pic.png", 0)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/posts/3/pic.png", url)
}

func TestLocalKeepsKeysUnderBasePath(t *testing.T) {
	s := newLocal(t)

	for _, key := range []string{"../../etc/passwd", "..", "a/../../b"} {
		assert.True(t, strings.HasPrefix(s.fullPath(key), s.basePath), key)
	}
}

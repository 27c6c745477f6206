package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	url, err := s.Store(context.Background(), []byte("payload"), "photo.JPG")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, URLPrefix), "url %q should start with %q", url, URLPrefix)
	assert.True(t, strings.HasSuffix(url, ".jpg"), "extension should be kept, lowercased: %q", url)

	name := strings.TrimPrefix(url, URLPrefix)
	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestDiskStoreGeneratesUniqueNames(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	a, err := s.Store(context.Background(), []byte("a"), "same.png")
	require.NoError(t, err)
	b, err := s.Store(context.Background(), []byte("b"), "same.png")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDiskStoreRemove(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	url, err := s.Store(context.Background(), []byte("x"), "f.png")
	require.NoError(t, err)
	require.NoError(t, s.Remove(context.Background(), url))

	name := strings.TrimPrefix(url, URLPrefix)
	_, statErr := os.Stat(filepath.Join(s.Dir(), name))
	assert.True(t, os.IsNotExist(statErr))

	// removing again is not an error
	assert.NoError(t, s.Remove(context.Background(), url))
}

func TestSanitizeExtDropsPathTricks(t *testing.T) {
	assert.Equal(t, ".png", sanitizeExt("../..//evil.PNG"))
	assert.Equal(t, "", sanitizeExt("noext"))
}

package services_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"spartanmarket/internal/auth"
	"spartanmarket/internal/repos"
	"spartanmarket/internal/storage"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tokens(t *testing.T) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService("test-secret")
	require.NoError(t, err)
	return svc
}

// fakeBlobs is an in-memory BlobStore. failAfter >= 0 makes the n-th Store
// call fail, for exercising the all-or-nothing create path.
type fakeBlobs struct {
	stored    map[string][]byte
	removed   []string
	failAfter int
	calls     int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{stored: map[string][]byte{}, failAfter: -1}
}

func (f *fakeBlobs) Store(_ context.Context, data []byte, originalName string) (string, error) {
	if f.failAfter >= 0 && f.calls >= f.failAfter {
		return "", fmt.Errorf("%w: disk full", storage.ErrStore)
	}
	f.calls++
	url := fmt.Sprintf("/uploads/blob-%d%s", f.calls, filepath.Ext(originalName))
	f.stored[url] = data
	return url, nil
}

func (f *fakeBlobs) Remove(_ context.Context, url string) error {
	delete(f.stored, url)
	f.removed = append(f.removed, url)
	return nil
}

// Package storage persists uploaded files under generated names and hands
// back URLs clients can fetch them from. The database never references a
// blob that was not written first.
package storage

import (
	"context"
	"errors"
)

var ErrStore = errors.New("storage failure")

type BlobStore interface {
	// Store writes the bytes under a collision-resistant name that keeps the
	// original extension and returns the URL to retrieve them.
	Store(ctx context.Context, data []byte, originalName string) (string, error)
	// Remove deletes a previously stored blob. Removing an absent blob is not
	// an error.
	Remove(ctx context.Context, url string) error
}

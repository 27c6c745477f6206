package services_test

import (
	"context"
	"testing"

	"spartanmarket/internal/domain"
	"spartanmarket/internal/repos"
	"spartanmarket/internal/services"
	"spartanmarket/internal/storage"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingService(t *testing.T, blobs storage.BlobStore) (*services.ListingService, *services.UserService) {
	t.Helper()
	db := memdb(t)
	return newListingServiceDB(t, db, blobs)
}

func newListingServiceDB(t *testing.T, db *sqlx.DB, blobs storage.BlobStore) (*services.ListingService, *services.UserService) {
	t.Helper()
	users := repos.NewUserRepo(db)
	listings := services.NewListingService(repos.NewListingRepo(db), users, blobs)
	accounts := services.NewUserService(users, tokens(t), blobs, "@sjsu.edu")
	return listings, accounts
}

func mustRegister(t *testing.T, accounts *services.UserService, username string) *domain.User {
	t.Helper()
	u, err := accounts.Register(username, username+"@sjsu.edu", "secretpass1")
	require.NoError(t, err)
	return u
}

func TestCreateListingStoresImagesFirstIsPrimary(t *testing.T) {
	blobs := newFakeBlobs()
	svc, accounts := newListingService(t, blobs)
	seller := mustRegister(t, accounts, "alice")

	created, err := svc.Create(context.Background(), seller, &domain.Listing{
		Title:       "Road bike",
		Description: "Barely used",
		Price:       120,
		Category:    "sports",
	}, []services.ImageUpload{
		{Data: []byte("front"), Filename: "front.JPG"},
		{Data: []byte("back"), Filename: "back.png"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAvailable, created.Status)
	assert.Equal(t, seller.ID, created.SellerID)
	require.Len(t, created.Images, 2)
	assert.True(t, created.Images[0].IsPrimary)
	assert.False(t, created.Images[1].IsPrimary)
	assert.Len(t, blobs.stored, 2)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.True(t, got.Images[0].IsPrimary)
	require.NotNil(t, got.Seller)
	assert.Equal(t, "alice", got.Seller.Username)
}

func TestCreateListingRollsBackBlobsOnStoreFailure(t *testing.T) {
	blobs := newFakeBlobs()
	blobs.failAfter = 2
	svc, accounts := newListingService(t, blobs)
	seller := mustRegister(t, accounts, "alice")

	_, err := svc.Create(context.Background(), seller, &domain.Listing{
		Title:       "Desk",
		Description: "Wobbly",
		Price:       10,
		Category:    "furniture",
	}, []services.ImageUpload{
		{Data: []byte("a"), Filename: "a.jpg"},
		{Data: []byte("b"), Filename: "b.jpg"},
		{Data: []byte("c"), Filename: "c.jpg"},
	})
	require.ErrorIs(t, err, storage.ErrStore)

	// The two blobs stored before the failure were cleaned up and no
	// listing was persisted.
	assert.Empty(t, blobs.stored)
	assert.Len(t, blobs.removed, 2)
	page, err := svc.ListAvailable(0, 20)
	require.NoError(t, err)
	assert.Zero(t, page.TotalElements)
}

func TestUpdateStatus(t *testing.T) {
	svc, accounts := newListingService(t, newFakeBlobs())
	seller := mustRegister(t, accounts, "alice")
	created, err := svc.Create(context.Background(), seller, &domain.Listing{
		Title: "Lamp", Description: "Bright", Price: 15, Category: "home",
	}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(created.ID, domain.StatusSold)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSold, updated.Status)

	_, err = svc.UpdateStatus(created.ID, domain.ListingStatus("PENDING"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus("missing", domain.StatusSold)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestDeleteListingRemovesBlobs(t *testing.T) {
	blobs := newFakeBlobs()
	svc, accounts := newListingService(t, blobs)
	seller := mustRegister(t, accounts, "alice")
	created, err := svc.Create(context.Background(), seller, &domain.Listing{
		Title: "Chair", Description: "Comfy", Price: 25, Category: "furniture",
	}, []services.ImageUpload{{Data: []byte("x"), Filename: "x.jpg"}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, blobs.stored)
	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestByPriceRangeRejectsInvertedBounds(t *testing.T) {
	svc, _ := newListingService(t, newFakeBlobs())
	_, err := svc.ByPriceRange(100, 10, 0, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestListAvailablePaginationEnvelope(t *testing.T) {
	svc, accounts := newListingService(t, newFakeBlobs())
	seller := mustRegister(t, accounts, "alice")
	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), seller, &domain.Listing{
			Title: "Item", Description: "n", Price: 1, Category: "misc",
		}, nil)
		require.NoError(t, err)
	}

	page, err := svc.ListAvailable(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Size)
	assert.EqualValues(t, 5, page.TotalElements)
	assert.EqualValues(t, 3, page.TotalPages)

	// Out-of-range knobs fall back to defaults.
	page, err = svc.ListAvailable(-3, 500)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 100, page.Size)
}

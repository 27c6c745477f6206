package services

import (
	"context"
	"database/sql"
	"errors"

	"spartanmarket/internal/domain"
	"spartanmarket/internal/repos"
	"spartanmarket/internal/storage"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ImageUpload struct {
	Data     []byte
	Filename string
}

type ListingService struct {
	Listings *repos.ListingRepo
	Users    *repos.UserRepo
	Blobs    storage.BlobStore
}

func NewListingService(listings *repos.ListingRepo, users *repos.UserRepo, blobs storage.BlobStore) *ListingService {
	return &ListingService{Listings: listings, Users: users, Blobs: blobs}
}

func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// Create persists a listing owned by the caller. The seller and the initial
// AVAILABLE status are forced regardless of the input. All-or-nothing: blobs
// are written first, then the listing and image rows go into one transaction;
// if any blob write fails the already stored ones are removed and nothing is
// persisted.
func (s *ListingService) Create(ctx context.Context, seller *domain.User, l *domain.Listing, images []ImageUpload) (*domain.Listing, error) {
	l.ID = uuid.NewString()
	l.SellerID = seller.ID
	l.Status = domain.StatusAvailable

	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.Blobs.Store(ctx, img.Data, img.Filename)
		if err != nil {
			for _, u := range urls {
				_ = s.Blobs.Remove(ctx, u)
			}
			return nil, err
		}
		urls = append(urls, url)
	}

	recs := make([]domain.ListingImage, len(urls))
	for i, url := range urls {
		recs[i] = domain.ListingImage{
			ID:        uuid.NewString(),
			ImageURL:  url,
			IsPrimary: i == 0,
		}
	}
	if err := s.Listings.CreateWithImages(l, recs); err != nil {
		for _, u := range urls {
			_ = s.Blobs.Remove(ctx, u)
		}
		return nil, err
	}
	l.Images = recs
	l.Seller = seller
	return l, nil
}

func (s *ListingService) ListAvailable(page, size int) (domain.Page, error) {
	page, size = clampPage(page, size)
	ls, total, err := s.Listings.ListByStatus(domain.StatusAvailable, size, page*size)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(ls, page, size, total), nil
}

func (s *ListingService) Search(keyword string, page, size int) (domain.Page, error) {
	page, size = clampPage(page, size)
	ls, total, err := s.Listings.Search(keyword, size, page*size)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(ls, page, size, total), nil
}

func (s *ListingService) ByCategory(category string, page, size int) (domain.Page, error) {
	page, size = clampPage(page, size)
	ls, total, err := s.Listings.ByCategory(category, size, page*size)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(ls, page, size, total), nil
}

func (s *ListingService) ByPriceRange(min, max float64, page, size int) (domain.Page, error) {
	if min > max {
		return domain.Page{}, domain.ErrInvalidRange
	}
	page, size = clampPage(page, size)
	ls, total, err := s.Listings.ByPriceRange(min, max, size, page*size)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(ls, page, size, total), nil
}

func (s *ListingService) BySeller(sellerID string, page, size int) (domain.Page, error) {
	page, size = clampPage(page, size)
	ls, total, err := s.Listings.BySeller(sellerID, size, page*size)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(ls, page, size, total), nil
}

func (s *ListingService) Get(id string) (domain.Listing, error) {
	l, err := s.Listings.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	if err != nil {
		return domain.Listing{}, err
	}
	if seller, err := s.Users.ByID(l.SellerID); err == nil {
		l.Seller = seller
	}
	return l, nil
}

func (s *ListingService) UpdateStatus(id string, status domain.ListingStatus) (domain.Listing, error) {
	if !status.Valid() {
		return domain.Listing{}, domain.ErrInvalidStatus
	}
	ok, err := s.Listings.UpdateStatus(id, status)
	if err != nil {
		return domain.Listing{}, err
	}
	if !ok {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return s.Get(id)
}

// Delete removes the listing with its image rows, then best-effort removes
// the blobs the rows pointed at.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	imgs, err := s.Listings.Images(id)
	if err != nil {
		return err
	}
	if err := s.Listings.Delete(id); err != nil {
		return err
	}
	for _, img := range imgs {
		_ = s.Blobs.Remove(ctx, img.ImageURL)
	}
	return nil
}

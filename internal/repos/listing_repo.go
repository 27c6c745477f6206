package repos

import (
	"spartanmarket/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ListingRepo struct{ DB *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{DB: db} }

const listingCols = `id, seller_id, title, description, price, category, status, created_at, updated_at`

// CreateWithImages inserts the listing row and all of its image rows in a
// single transaction, so a partially created listing is never visible.
func (r *ListingRepo) CreateWithImages(l *domain.Listing, images []domain.ListingImage) error {
	ts := now()
	l.CreatedAt = ts
	l.UpdatedAt = ts

	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExec(`
      INSERT INTO listings(id,seller_id,title,description,price,category,status,created_at,updated_at)
      VALUES(:id,:seller_id,:title,:description,:price,:category,:status,:created_at,:updated_at)`, l); err != nil {
		return err
	}
	for i := range images {
		images[i].ListingID = l.ID
		images[i].CreatedAt = ts
		images[i].UpdatedAt = ts
		if _, err := tx.NamedExec(`
          INSERT INTO listing_images(id,listing_id,image_url,is_primary,created_at,updated_at)
          VALUES(:id,:listing_id,:image_url,:is_primary,:created_at,:updated_at)`, &images[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	if err := r.DB.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id=?`, id); err != nil {
		return domain.Listing{}, err
	}
	imgs, err := r.Images(id)
	if err != nil {
		return domain.Listing{}, err
	}
	l.Images = imgs
	return l, nil
}

func (r *ListingRepo) Images(listingID string) ([]domain.ListingImage, error) {
	imgs := []domain.ListingImage{}
	err := r.DB.Select(&imgs, `
      SELECT * FROM listing_images WHERE listing_id=?
      ORDER BY is_primary DESC, created_at ASC, id ASC`, listingID)
	return imgs, err
}

func (r *ListingRepo) ListByStatus(status domain.ListingStatus, limit, offset int) ([]domain.Listing, int64, error) {
	out := []domain.Listing{}
	err := r.DB.Select(&out, `
      SELECT `+listingCols+` FROM listings WHERE status=?
      ORDER BY created_at DESC LIMIT ? OFFSET ?`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.DB.Get(&total, `SELECT COUNT(*) FROM listings WHERE status=?`, status); err != nil {
		return nil, 0, err
	}
	return out, total, r.attachImages(out)
}

// Search matches title or description case-insensitively. It deliberately
// does not filter by status: SOLD listings remain searchable even though the
// default browse endpoints hide them.
func (r *ListingRepo) Search(keyword string, limit, offset int) ([]domain.Listing, int64, error) {
	pat := "%" + keyword + "%"
	out := []domain.Listing{}
	err := r.DB.Select(&out, `
      SELECT `+listingCols+` FROM listings
      WHERE LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)
      ORDER BY created_at DESC LIMIT ? OFFSET ?`, pat, pat, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.DB.Get(&total, `
      SELECT COUNT(*) FROM listings
      WHERE LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)`, pat, pat); err != nil {
		return nil, 0, err
	}
	return out, total, r.attachImages(out)
}

func (r *ListingRepo) ByCategory(category string, limit, offset int) ([]domain.Listing, int64, error) {
	out := []domain.Listing{}
	err := r.DB.Select(&out, `
      SELECT `+listingCols+` FROM listings WHERE LOWER(category)=LOWER(?)
      ORDER BY created_at DESC LIMIT ? OFFSET ?`, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.DB.Get(&total, `SELECT COUNT(*) FROM listings WHERE LOWER(category)=LOWER(?)`, category); err != nil {
		return nil, 0, err
	}
	return out, total, r.attachImages(out)
}

func (r *ListingRepo) ByPriceRange(min, max float64, limit, offset int) ([]domain.Listing, int64, error) {
	out := []domain.Listing{}
	err := r.DB.Select(&out, `
      SELECT `+listingCols+` FROM listings
      WHERE price BETWEEN ? AND ? AND status=?
      ORDER BY created_at DESC LIMIT ? OFFSET ?`, min, max, domain.StatusAvailable, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.DB.Get(&total, `
      SELECT COUNT(*) FROM listings WHERE price BETWEEN ? AND ? AND status=?`,
		min, max, domain.StatusAvailable); err != nil {
		return nil, 0, err
	}
	return out, total, r.attachImages(out)
}

func (r *ListingRepo) BySeller(sellerID string, limit, offset int) ([]domain.Listing, int64, error) {
	out := []domain.Listing{}
	err := r.DB.Select(&out, `
      SELECT `+listingCols+` FROM listings WHERE seller_id=?
      ORDER BY created_at DESC LIMIT ? OFFSET ?`, sellerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.DB.Get(&total, `SELECT COUNT(*) FROM listings WHERE seller_id=?`, sellerID); err != nil {
		return nil, 0, err
	}
	return out, total, r.attachImages(out)
}

func (r *ListingRepo) UpdateStatus(id string, status domain.ListingStatus) (bool, error) {
	res, err := r.DB.Exec(`UPDATE listings SET status=?, updated_at=? WHERE id=?`, status, now(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes the listing and its image rows in one transaction. Messages
// that referenced the listing keep their rows with the reference cleared.
// Deleting an absent listing is a no-op.
func (r *ListingRepo) Delete(id string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM listing_images WHERE listing_id=?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM listings WHERE id=?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// attachImages loads the image rows for a page of listings in one query.
func (r *ListingRepo) attachImages(ls []domain.Listing) error {
	for i := range ls {
		ls[i].Images = []domain.ListingImage{}
	}
	if len(ls) == 0 {
		return nil
	}
	ids := make([]string, len(ls))
	byID := make(map[string]int, len(ls))
	for i, l := range ls {
		ids[i] = l.ID
		byID[l.ID] = i
	}
	query, args, err := sqlx.In(`
      SELECT * FROM listing_images WHERE listing_id IN (?)
      ORDER BY is_primary DESC, created_at ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	var imgs []domain.ListingImage
	if err := r.DB.Select(&imgs, query, args...); err != nil {
		return err
	}
	for _, img := range imgs {
		i := byID[img.ListingID]
		ls[i].Images = append(ls[i].Images, img)
	}
	return nil
}

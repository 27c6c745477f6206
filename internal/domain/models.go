package domain

type ListingStatus string

const (
	StatusAvailable ListingStatus = "AVAILABLE"
	StatusSold      ListingStatus = "SOLD"
)

func (s ListingStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

type Listing struct {
	ID          string        `db:"id" json:"id"`
	SellerID    string        `db:"seller_id" json:"sellerId"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Price       float64       `db:"price" json:"price"`
	Category    string        `db:"category" json:"category"`
	Status      ListingStatus `db:"status" json:"status"`
	CreatedAt   string        `db:"created_at" json:"createdAt"`
	UpdatedAt   string        `db:"updated_at" json:"updatedAt"`

	Seller *User          `db:"-" json:"seller,omitempty"`
	Images []ListingImage `db:"-" json:"images"`
}

type ListingImage struct {
	ID        string `db:"id" json:"id"`
	ListingID string `db:"listing_id" json:"listingId"`
	ImageURL  string `db:"image_url" json:"imageUrl"`
	IsPrimary bool   `db:"is_primary" json:"isPrimary"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type Message struct {
	ID         string  `db:"id" json:"id"`
	SenderID   string  `db:"sender_id" json:"senderId"`
	ReceiverID string  `db:"receiver_id" json:"receiverId"`
	ListingID  *string `db:"listing_id" json:"listingId,omitempty"`
	Content    string  `db:"content" json:"content"`
	IsRead     bool    `db:"is_read" json:"isRead"`
	CreatedAt  string  `db:"created_at" json:"createdAt"`
	UpdatedAt  string  `db:"updated_at" json:"updatedAt"`
}

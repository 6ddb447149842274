package models

import "time"

// Listing is a rentable item record with pricing, availability, and
// descriptive attributes. Category and User are hydrated from their
// referenced rows when the repository loads relations.
type Listing struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CategoryID    string    `json:"category_id"`
	SubcategoryID string    `json:"subcategory_id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	IsFeatured    bool      `json:"is_featured"`
	Location      string    `json:"location"`
	Brand         string    `json:"brand,omitempty"`
	Condition     string    `json:"condition,omitempty"`
	PricePeriod   string    `json:"price_period"`
	Deposit       float64   `json:"deposit"`
	MinDuration   int       `json:"min_duration"`
	AvailableFrom string    `json:"available_from,omitempty"`
	AvailableTo   string    `json:"available_to,omitempty"`
	Delivery      bool      `json:"delivery"`
	Shipping      float64   `json:"shipping"`
	Images        []string  `json:"images"`
	Video         string    `json:"video,omitempty"`
	RentalTerms   string    `json:"rental_terms,omitempty"`
	AcceptDeposit bool      `json:"accept_deposit"`
	Cancellation  string    `json:"cancellation,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Category *Category   `json:"category,omitempty"`
	User     *PublicUser `json:"user,omitempty"`
}

// ListingInput is the create/update payload for a listing. Booleans
// and numerics are pointers so a partial update can tell an absent
// key from an explicit zero or false; absent keys keep the stored
// value.
type ListingInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	CategoryID    string   `json:"category_id"`
	SubcategoryID string   `json:"subcategory_id"`
	Location      string   `json:"location"`
	Status        string   `json:"status"`
	IsFeatured    *bool    `json:"is_featured"`
	Brand         string   `json:"brand"`
	Condition     string   `json:"condition"`
	PricePeriod   string   `json:"price_period"`
	Deposit       *float64 `json:"deposit"`
	MinDuration   *int     `json:"min_duration"`
	AvailableFrom string   `json:"available_from"`
	AvailableTo   string   `json:"available_to"`
	Delivery      *bool    `json:"delivery"`
	Shipping      *float64 `json:"shipping"`
	Images        []string `json:"images"`
	Video         string   `json:"video"`
	RentalTerms   string   `json:"rental_terms"`
	AcceptDeposit *bool    `json:"accept_deposit"`
	Cancellation  string   `json:"cancellation"`
	Notes         string   `json:"notes"`
}

package listing

import (
	"context"
	"errors"

	"estatedesk/models"
)

var (
	// ErrNotFound is returned when no listing exists under the given ID.
	ErrNotFound = errors.New("listing not found")
	// ErrPriceImmutable rejects edits to a listing's price; the price is
	// fixed when the listing is created.
	ErrPriceImmutable = errors.New("price cannot be changed after a listing is created")
	// ErrInvalidStatus rejects unknown lifecycle statuses.
	ErrInvalidStatus = errors.New("invalid listing status")
)

// ListingService exposes the dashboard's listing operations.
type ListingService interface {
	// Browse returns listings matching the dashboard filters.
	Browse(ctx context.Context, filters models.ListingFilters) ([]models.Listing, error)
	// Get returns one listing and records the view.
	Get(ctx context.Context, id string) (*models.Listing, error)
	// Update applies a partial edit. Price changes are rejected.
	Update(ctx context.Context, id string, patch ListingUpdate) (*models.Listing, error)
	// SetStatus moves a listing through its lifecycle (active/sold/rented).
	SetStatus(ctx context.Context, id string, status models.ListingStatus) (*models.Listing, error)
	// Delete removes a listing.
	Delete(ctx context.Context, id string) error
}

// ListingUpdate is a partial listing edit; nil fields are left unchanged.
// Price is deliberately absent: see ErrPriceImmutable.
type ListingUpdate struct {
	Title          *string               `json:"title,omitempty"`
	BHK            *string               `json:"bhk,omitempty"`
	AreaSqFt       *float64              `json:"areaSqFt,omitempty"`
	ListingIntent  *models.ListingIntent `json:"listingIntent,omitempty"`
	BiddingEnabled *bool                 `json:"biddingEnabled,omitempty"`
	Description    *string               `json:"description,omitempty"`

	Address  *string          `json:"address,omitempty"`
	City     *string          `json:"city,omitempty"`
	State    *string          `json:"state,omitempty"`
	Pincode  *string          `json:"pincode,omitempty"`
	Landmark *string          `json:"landmark,omitempty"`
	Location *models.GeoPoint `json:"coordinates,omitempty"`

	Amenities       *[]string `json:"amenities,omitempty"`
	CustomAmenities *[]string `json:"customAmenities,omitempty"`
	VirtualTourURL  *string   `json:"virtualTourUrl,omitempty"`

	// Price is accepted in the payload only so that an attempted change can
	// be rejected loudly instead of silently ignored.
	Price *float64 `json:"price,omitempty"`
}

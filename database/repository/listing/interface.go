package listingRepo

import (
	"context"

	"estatedesk/models"
)

// ListingRepository defines methods for listing data access.
type ListingRepository interface {
	// GetByID retrieves a listing by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	// List retrieves listings matching the dashboard filters.
	List(ctx context.Context, filters models.ListingFilters) ([]models.Listing, error)
	// Create inserts a new listing record.
	Create(ctx context.Context, listing *models.Listing) error
	// Update replaces an existing listing record.
	Update(ctx context.Context, listing *models.Listing) error
	// Delete removes a listing record by its ID.
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the view counter for a listing.
	IncrementViews(ctx context.Context, id string) error
}

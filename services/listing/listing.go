package listing

import (
	"context"
	"fmt"

	listingRepo "estatedesk/database/repository/listing"
	"estatedesk/models"
	"estatedesk/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultListingService implements ListingService.
type DefaultListingService struct {
	Repo  listingRepo.ListingRepository
	Cache *redis.Client
}

// Browse returns listings matching the filters, served from the Redis query
// cache when possible.
func (s *DefaultListingService) Browse(ctx context.Context, filters models.ListingFilters) ([]models.Listing, error) {
	if cached, ok := s.cachedBrowse(ctx, filters); ok {
		return cached, nil
	}

	listings, err := s.Repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	s.storeBrowse(ctx, filters, listings)
	return listings, nil
}

// Get returns one listing and bumps its view counter.
func (s *DefaultListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}

	if err := s.Repo.IncrementViews(ctx, id); err != nil {
		utils.GetLogger().Warn("Failed to record listing view",
			zap.String("id", id), zap.Error(err))
	}
	return listing, nil
}

// Update applies a partial edit. The price is immutable once the listing
// exists; an attempt to change it is rejected, not ignored.
func (s *DefaultListingService) Update(ctx context.Context, id string, patch ListingUpdate) (*models.Listing, error) {
	listing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}

	if patch.Price != nil && *patch.Price != listing.Price {
		return nil, ErrPriceImmutable
	}

	applyUpdate(listing, patch)
	listing.UpdatedAt = timeNow()

	if err := s.Repo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	s.invalidate(ctx)
	return listing, nil
}

// SetStatus moves the listing through its lifecycle.
func (s *DefaultListingService) SetStatus(ctx context.Context, id string, status models.ListingStatus) (*models.Listing, error) {
	if !models.ValidListingStatus(status) {
		return nil, ErrInvalidStatus
	}

	listing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	if listing == nil {
		return nil, ErrNotFound
	}

	listing.Status = status
	listing.UpdatedAt = timeNow()

	if err := s.Repo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing status: %w", err)
	}
	s.invalidate(ctx)
	return listing, nil
}

// Delete removes a listing.
func (s *DefaultListingService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func applyUpdate(l *models.Listing, p ListingUpdate) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.BHK != nil {
		l.BHK = *p.BHK
	}
	if p.AreaSqFt != nil {
		l.AreaSqFt = *p.AreaSqFt
	}
	if p.ListingIntent != nil {
		l.ListingIntent = *p.ListingIntent
	}
	if p.BiddingEnabled != nil {
		l.BiddingEnabled = *p.BiddingEnabled
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.State != nil {
		l.State = *p.State
	}
	if p.Pincode != nil {
		l.Pincode = *p.Pincode
	}
	if p.Landmark != nil {
		l.Landmark = *p.Landmark
	}
	if p.Location != nil {
		loc := *p.Location
		l.Location = &loc
	}
	if p.Amenities != nil {
		l.Amenities = *p.Amenities
	}
	if p.CustomAmenities != nil {
		l.CustomAmenities = *p.CustomAmenities
	}
	if p.VirtualTourURL != nil {
		l.VirtualTourURL = *p.VirtualTourURL
	}
}

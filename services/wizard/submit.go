package wizard

import (
	"context"
	"fmt"
	"time"

	"estatedesk/models"
	"estatedesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit runs the submission assembler: re-validate the review step, promote
// every staged blob to a persisted URI, build the listing payload and hand it
// to the listing repository. Success is the only path that clears the draft;
// any failure leaves it intact and re-arms the submit action.
func (s *DefaultWizardService) Submit(ctx context.Context, sessionID string) (*models.Listing, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.CurrentStep() != models.StepReview {
		return nil, ErrNotOnReview
	}
	if sess.Submitting {
		return nil, ErrSubmissionInFlight
	}

	if result := Validate(models.StepReview, &sess.Draft); !result.Valid {
		return nil, &ValidationError{Step: models.StepReview, Fields: result.Errors}
	}

	// One submission in flight per session.
	sess.Submitting = true
	s.saveSession(ctx, sess)

	listing, err := s.assemble(ctx, sess)
	if err != nil {
		sess.Submitting = false
		s.saveSession(ctx, sess)
		return nil, err
	}

	if sess.EditListingID != "" {
		err = s.Listings.Update(ctx, listing)
	} else {
		err = s.Listings.Create(ctx, listing)
	}
	if err != nil {
		sess.Submitting = false
		s.saveSession(ctx, sess)
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	// Success: the draft is done. Clear the snapshot and hand staged-blob
	// cleanup and cache invalidation to the background worker.
	if err := s.Drafts.Clear(ctx, draftKey(sessionID)); err != nil {
		utils.GetLogger().Warn("Failed to clear submitted draft",
			zap.String("sessionId", sessionID), zap.Error(err))
	}
	if s.Tasks != nil {
		var staged []string
		for _, f := range sess.Draft.Media {
			if _, ok := s.Staging.Get(f.ID); ok {
				staged = append(staged, f.ID)
			}
		}
		s.Tasks.EnqueueStagingPurge(staged)
		s.Tasks.EnqueueListingCacheFlush()
	}

	return listing, nil
}

// assemble uploads the draft's staged blobs and builds the listing payload.
// Files that already carry a URL (edit sessions) are not re-uploaded.
func (s *DefaultWizardService) assemble(ctx context.Context, sess *models.WizardSession) (*models.Listing, error) {
	d := &sess.Draft

	for i := range d.Media {
		f := &d.Media[i]
		if f.URL != "" {
			continue
		}
		staged, ok := s.Staging.Get(f.ID)
		if !ok {
			return nil, fmt.Errorf("staged file %s (%s) is no longer available", f.ID, f.Name)
		}
		url, err := s.Storage.UploadFile(ctx, staged.Path, folderFor(f.Kind))
		if err != nil {
			return nil, err
		}
		f.URL = url
	}

	now := time.Now()
	listing := &models.Listing{
		ID:              uuid.New().String(),
		Title:           d.Title,
		PropertyType:    d.PropertyType,
		SellerType:      d.SellerType,
		BHK:             d.BHK,
		AreaSqFt:        d.AreaSqFt,
		Price:           d.Price,
		ListingIntent:   d.ListingIntent,
		Status:          models.StatusActive,
		BiddingEnabled:  d.BiddingEnabled,
		Description:     d.Description,
		Address:         d.Address,
		City:            d.City,
		State:           d.State,
		Pincode:         d.Pincode,
		Landmark:        d.Landmark,
		Location:        d.Location,
		Amenities:       d.Amenities,
		CustomAmenities: d.CustomAmenities,
		VirtualTourURL:  d.VirtualTourURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, f := range d.Images() {
		listing.Images = append(listing.Images, f.URL)
		if f.Category != "" {
			if listing.ImageCategories == nil {
				listing.ImageCategories = make(map[string][]string)
			}
			listing.ImageCategories[f.Category] = append(listing.ImageCategories[f.Category], f.URL)
		}
	}
	if cover := d.CoverImage(); cover != nil {
		listing.CoverImage = cover.URL
	}
	for _, f := range d.Videos() {
		listing.Videos = append(listing.Videos, f.URL)
	}
	for _, f := range d.RequiredDocuments() {
		listing.RequiredDocuments = append(listing.RequiredDocuments, models.ListingDocument{
			URL:        f.URL,
			Type:       f.DocumentType,
			CustomType: f.CustomType,
		})
	}
	for _, f := range d.Documents() {
		listing.Documents = append(listing.Documents, f.URL)
	}
	if b := d.Brochure(); b != nil {
		listing.ProjectBrochure = b.URL
	}

	// Edit sessions keep the original identity, creation time, counters and
	// the immutable price.
	if sess.EditListingID != "" {
		existing, err := s.Listings.GetByID(ctx, sess.EditListingID)
		if err != nil {
			return nil, fmt.Errorf("failed to load listing %s: %w", sess.EditListingID, err)
		}
		if existing == nil {
			return nil, fmt.Errorf("listing %s not found", sess.EditListingID)
		}
		listing.ID = existing.ID
		listing.Price = existing.Price
		listing.Status = existing.Status
		listing.Views = existing.Views
		listing.Inquiries = existing.Inquiries
		listing.CreatedAt = existing.CreatedAt
	}

	return listing, nil
}

func folderFor(kind models.MediaKind) string {
	switch kind {
	case models.MediaImage:
		return "listings/images"
	case models.MediaVideo:
		return "listings/videos"
	case models.MediaBrochure:
		return "listings/brochures"
	default:
		return "listings/documents"
	}
}

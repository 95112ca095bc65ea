package wizard

import (
	"context"
	"fmt"
	"time"

	listingRepo "estatedesk/database/repository/listing"
	"estatedesk/models"
	"estatedesk/services/draft"
	"estatedesk/services/media"
	"estatedesk/services/storage"
	"estatedesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Drafts   draft.Store
	Staging  *media.StagingStore
	Storage  storage.StorageService
	Listings listingRepo.ListingRepository
	Tasks    TaskEnqueuer
}

func draftKey(sessionID string) string {
	return utils.DraftKeyPrefix + sessionID
}

// loadSession fetches the persisted session, or nil when none exists.
func (s *DefaultWizardService) loadSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	if sessionID == "" {
		return nil, nil
	}
	return s.Drafts.Load(ctx, draftKey(sessionID))
}

// saveSession persists the session. Autosave is best-effort: a failed save is
// logged, not surfaced, since the caller already holds the updated state.
func (s *DefaultWizardService) saveSession(ctx context.Context, sess *models.WizardSession) {
	sess.UpdatedAt = time.Now()
	if err := s.Drafts.Save(ctx, draftKey(sess.SessionID), sess); err != nil {
		utils.GetLogger().Warn("Failed to autosave wizard session",
			zap.String("sessionId", sess.SessionID), zap.Error(err))
	}
}

// StartSession restores the persisted session or creates an empty one.
func (s *DefaultWizardService) StartSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	if sessionID != "" {
		sess, err := s.loadSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	} else {
		sessionID = uuid.New().String()
	}

	now := time.Now()
	sess := &models.WizardSession{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.saveSession(ctx, sess)
	return sess, nil
}

// BeginEdit opens a session pre-filled from an existing listing. The draft
// carries the listing's fields; persisted media keep their URLs so the
// assembler does not re-upload them. Price is locked for edit sessions.
func (s *DefaultWizardService) BeginEdit(ctx context.Context, listingID string) (*models.WizardSession, error) {
	listing, err := s.Listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing for editing: %w", err)
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %s not found", listingID)
	}

	now := time.Now()
	sess := &models.WizardSession{
		SessionID:     uuid.New().String(),
		EditListingID: listing.ID,
		Draft:         draftFromListing(listing),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.saveSession(ctx, sess)
	return sess, nil
}

// GetSession returns the persisted session, or ErrSessionNotFound.
func (s *DefaultWizardService) GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// UpdateDraft applies a partial update to the draft and autosaves the
// session. Price changes are rejected for edit sessions: the price was fixed
// when the listing was created.
func (s *DefaultWizardService) UpdateDraft(ctx context.Context, sessionID string, patch DraftPatch) (*models.WizardSession, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if patch.Price != nil && sess.EditListingID != "" && *patch.Price != sess.Draft.Price {
		return nil, ErrPriceImmutable
	}

	applyPatch(&sess.Draft, patch)
	s.saveSession(ctx, sess)
	return sess, nil
}

// Advance validates the current step and moves forward when valid.
func (s *DefaultWizardService) Advance(ctx context.Context, sessionID string) (*models.WizardSession, StepResult, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, StepResult{}, err
	}

	result := Advance(sess)
	if result.Valid {
		s.saveSession(ctx, sess)
	}
	return sess, result, nil
}

// Retreat moves back one step; no validation, no data discarded.
func (s *DefaultWizardService) Retreat(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	Retreat(sess)
	s.saveSession(ctx, sess)
	return sess, nil
}

// AttachFile stages the upload and classifies it onto the draft. A rejected
// file (oversized, duplicate type) never reaches the draft or the staging
// area.
func (s *DefaultWizardService) AttachFile(ctx context.Context, sessionID string, upload FileUpload) (*models.MediaFile, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Reject oversized uploads before writing anything to disk.
	if upload.Size > utils.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	staged, err := s.Staging.Put(upload.Reader, upload.Name, upload.ContentType)
	if err != nil {
		return nil, err
	}

	file := models.MediaFile{
		ID:           staged.ID,
		Name:         staged.Name,
		Size:         staged.Size,
		ContentType:  staged.ContentType,
		Kind:         upload.Kind,
		Category:     upload.Category,
		DocumentType: upload.DocumentType,
	}

	if err := AttachMedia(&sess.Draft, file); err != nil {
		// The draft is untouched; drop the staged copy as well.
		if rmErr := s.Staging.Remove(staged.ID); rmErr != nil {
			utils.GetLogger().Warn("Failed to drop rejected upload", zap.Error(rmErr))
		}
		return nil, err
	}

	s.saveSession(ctx, sess)
	attached := sess.Draft.FindMedia(staged.ID)
	return attached, nil
}

// RemoveFile removes a classified file from the draft and the staging area.
func (s *DefaultWizardService) RemoveFile(ctx context.Context, sessionID, fileID string) error {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := RemoveMedia(&sess.Draft, fileID); err != nil {
		return err
	}
	if err := s.Staging.Remove(fileID); err != nil {
		utils.GetLogger().Warn("Failed to remove staged file",
			zap.String("fileId", fileID), zap.Error(err))
	}
	s.saveSession(ctx, sess)
	return nil
}

// SetCover designates an image as the cover photo.
func (s *DefaultWizardService) SetCover(ctx context.Context, sessionID, fileID string) error {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := SetCoverImage(&sess.Draft, fileID); err != nil {
		return err
	}
	s.saveSession(ctx, sess)
	return nil
}

// Discard drops the session, its persisted snapshot and its staged files.
func (s *DefaultWizardService) Discard(ctx context.Context, sessionID string) error {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, f := range sess.Draft.Media {
		if err := s.Staging.Remove(f.ID); err != nil {
			utils.GetLogger().Warn("Failed to remove staged file",
				zap.String("fileId", f.ID), zap.Error(err))
		}
	}
	return s.Drafts.Clear(ctx, draftKey(sessionID))
}

// applyPatch copies the patch's set fields onto the draft. BHK values are
// normalized to upper case here, as an explicit rule of the update operation.
func applyPatch(d *models.PropertyDraft, p DraftPatch) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.PropertyType != nil {
		d.PropertyType = *p.PropertyType
	}
	if p.SellerType != nil {
		d.SellerType = *p.SellerType
	}
	if p.BHK != nil {
		d.BHK = NormalizeBHK(*p.BHK)
	}
	if p.AreaSqFt != nil {
		d.AreaSqFt = *p.AreaSqFt
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.ListingIntent != nil {
		d.ListingIntent = *p.ListingIntent
	}
	if p.BiddingEnabled != nil {
		d.BiddingEnabled = *p.BiddingEnabled
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.City != nil {
		d.City = *p.City
	}
	if p.State != nil {
		d.State = *p.State
	}
	if p.Pincode != nil {
		d.Pincode = *p.Pincode
	}
	if p.Landmark != nil {
		d.Landmark = *p.Landmark
	}
	if p.Location != nil {
		loc := *p.Location
		d.Location = &loc
	}
	if p.Amenities != nil {
		// Only the fixed vocabulary belongs here; free-form entries go
		// through CustomAmenities.
		var known []string
		for _, a := range *p.Amenities {
			if utils.KnownAmenity(a) {
				known = append(known, a)
			}
		}
		d.Amenities = known
	}
	if p.CustomAmenities != nil {
		d.CustomAmenities = *p.CustomAmenities
	}
	if p.VirtualTourURL != nil {
		d.VirtualTourURL = *p.VirtualTourURL
	}
	if p.TermsAccepted != nil {
		d.TermsAccepted = *p.TermsAccepted
	}
}

// draftFromListing rebuilds an editable draft from a published listing.
// Persisted media come back as URL-bearing entries; their handles are the
// URLs themselves since no staged blob exists for them.
func draftFromListing(l *models.Listing) models.PropertyDraft {
	d := models.PropertyDraft{
		Title:           l.Title,
		PropertyType:    l.PropertyType,
		SellerType:      l.SellerType,
		BHK:             l.BHK,
		AreaSqFt:        l.AreaSqFt,
		Price:           l.Price,
		ListingIntent:   l.ListingIntent,
		BiddingEnabled:  l.BiddingEnabled,
		Description:     l.Description,
		Address:         l.Address,
		City:            l.City,
		State:           l.State,
		Pincode:         l.Pincode,
		Landmark:        l.Landmark,
		Location:        l.Location,
		Amenities:       l.Amenities,
		CustomAmenities: l.CustomAmenities,
		VirtualTourURL:  l.VirtualTourURL,
	}

	categoryOf := make(map[string]string)
	for category, urls := range l.ImageCategories {
		for _, u := range urls {
			categoryOf[u] = category
		}
	}
	for _, u := range l.Images {
		d.Media = append(d.Media, models.MediaFile{
			ID:       u,
			Kind:     models.MediaImage,
			Category: categoryOf[u],
			Cover:    u == l.CoverImage,
			URL:      u,
		})
	}
	for _, u := range l.Videos {
		d.Media = append(d.Media, models.MediaFile{ID: u, Kind: models.MediaVideo, URL: u})
	}
	for _, doc := range l.RequiredDocuments {
		d.Media = append(d.Media, models.MediaFile{
			ID:           doc.URL,
			Kind:         models.MediaRequiredDocument,
			DocumentType: doc.Type,
			CustomType:   doc.CustomType,
			URL:          doc.URL,
		})
	}
	for _, u := range l.Documents {
		d.Media = append(d.Media, models.MediaFile{ID: u, Kind: models.MediaDocument, URL: u})
	}
	if l.ProjectBrochure != "" {
		d.Media = append(d.Media, models.MediaFile{ID: l.ProjectBrochure, Kind: models.MediaBrochure, URL: l.ProjectBrochure})
	}
	return d
}

package wizard

import (
	"context"
	"io"

	"estatedesk/models"
)

// WizardService manages listing-wizard sessions: draft mutation, step
// navigation, media classification and final submission. Exactly one editor
// works against one draft; sessions are persisted on every change.
type WizardService interface {
	// StartSession restores the session stored under sessionID, or creates an
	// empty one (generating an ID when sessionID is empty).
	StartSession(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// BeginEdit opens a session pre-filled from an existing listing. The
	// price is locked for the life of the session.
	BeginEdit(ctx context.Context, listingID string) (*models.WizardSession, error)
	// GetSession returns the persisted session, or ErrSessionNotFound.
	GetSession(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// UpdateDraft applies a partial update to the draft and autosaves.
	UpdateDraft(ctx context.Context, sessionID string, patch DraftPatch) (*models.WizardSession, error)
	// Advance validates the current step and moves forward when valid.
	Advance(ctx context.Context, sessionID string) (*models.WizardSession, StepResult, error)
	// Retreat moves back one step without validation.
	Retreat(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// AttachFile stages an upload and classifies it onto the draft.
	AttachFile(ctx context.Context, sessionID string, upload FileUpload) (*models.MediaFile, error)
	// RemoveFile removes a classified file from the draft and the staging area.
	RemoveFile(ctx context.Context, sessionID, fileID string) error
	// SetCover designates an image as the cover photo.
	SetCover(ctx context.Context, sessionID, fileID string) error
	// Submit assembles and persists the listing. Success clears the draft.
	Submit(ctx context.Context, sessionID string) (*models.Listing, error)
	// Discard drops the session and its staged files.
	Discard(ctx context.Context, sessionID string) error
}

// FileUpload carries one incoming file and its classification.
type FileUpload struct {
	Reader      io.Reader
	Name        string
	Size        int64
	ContentType string

	Kind         models.MediaKind
	Category     string
	DocumentType string
}

// DraftPatch is a partial draft update; nil fields are left unchanged.
type DraftPatch struct {
	Title          *string               `json:"title,omitempty"`
	PropertyType   *models.PropertyType  `json:"propertyType,omitempty"`
	SellerType     *models.SellerType    `json:"sellerType,omitempty"`
	BHK            *string               `json:"bhk,omitempty"`
	AreaSqFt       *float64              `json:"areaSqFt,omitempty"`
	Price          *float64              `json:"price,omitempty"`
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
	TermsAccepted   *bool     `json:"termsAccepted,omitempty"`
}

// TaskEnqueuer hands post-submission housekeeping to the background worker.
type TaskEnqueuer interface {
	EnqueueStagingPurge(fileIDs []string)
	EnqueueListingCacheFlush()
}

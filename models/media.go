package models

// MediaKind classifies an uploaded file on a draft.
type MediaKind string

const (
	MediaImage            MediaKind = "image"
	MediaVideo            MediaKind = "video"
	MediaDocument         MediaKind = "document"
	MediaRequiredDocument MediaKind = "requiredDocument"
	MediaBrochure         MediaKind = "brochure"
)

// ValidMediaKind reports whether k is a recognised media kind.
func ValidMediaKind(k MediaKind) bool {
	switch k {
	case MediaImage, MediaVideo, MediaDocument, MediaRequiredDocument, MediaBrochure:
		return true
	}
	return false
}

// MediaFile is a single tagged upload attached to a draft. The draft keeps
// exactly one ordered list of these; flat and by-category views are derived
// from it so removals can never leave a dangling category or cover reference.
//
// ID refers to a staged blob until submission, when URL is filled with the
// persisted location.
type MediaFile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType,omitempty"`
	Kind        MediaKind `json:"kind"`

	// Category is the image-category label, for images only.
	Category string `json:"category,omitempty"`

	// DocumentType labels a required document; unique per draft.
	DocumentType string `json:"documentType,omitempty"`
	CustomType   bool   `json:"customType,omitempty"`

	// Cover marks the single designated cover image.
	Cover bool `json:"cover,omitempty"`

	// URL is set by the submission assembler once the blob is persisted.
	URL string `json:"url,omitempty"`
}

package models

// PropertyDraft is the in-progress listing being edited in the wizard. It is
// mutated only through the wizard service's operations and persisted to the
// draft store on every change.
type PropertyDraft struct {
	Title          string        `json:"title,omitempty"`
	PropertyType   PropertyType  `json:"propertyType,omitempty"`
	SellerType     SellerType    `json:"sellerType,omitempty"`
	BHK            string        `json:"bhk,omitempty"`
	AreaSqFt       float64       `json:"areaSqFt,omitempty"`
	Price          float64       `json:"price,omitempty"`
	ListingIntent  ListingIntent `json:"listingIntent,omitempty"`
	BiddingEnabled bool          `json:"biddingEnabled,omitempty"`
	Description    string        `json:"description,omitempty"`

	Address  string    `json:"address,omitempty"`
	City     string    `json:"city,omitempty"`
	State    string    `json:"state,omitempty"`
	Pincode  string    `json:"pincode,omitempty"`
	Landmark string    `json:"landmark,omitempty"`
	Location *GeoPoint `json:"coordinates,omitempty"`

	Amenities       []string `json:"amenities,omitempty"`
	CustomAmenities []string `json:"customAmenities,omitempty"`

	// Media is the single source of truth for every uploaded blob on the
	// draft: images, videos, documents, required documents and the brochure.
	Media []MediaFile `json:"media,omitempty"`

	VirtualTourURL string `json:"virtualTourUrl,omitempty"`
	TermsAccepted  bool   `json:"termsAccepted,omitempty"`
}

// mediaOfKind returns the draft's files of the given kind, in upload order.
func (d *PropertyDraft) mediaOfKind(kind MediaKind) []MediaFile {
	var out []MediaFile
	for _, f := range d.Media {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Images returns the draft's images in upload order.
func (d *PropertyDraft) Images() []MediaFile { return d.mediaOfKind(MediaImage) }

// Videos returns the draft's videos in upload order.
func (d *PropertyDraft) Videos() []MediaFile { return d.mediaOfKind(MediaVideo) }

// Documents returns the draft's optional, uncategorised documents.
func (d *PropertyDraft) Documents() []MediaFile { return d.mediaOfKind(MediaDocument) }

// RequiredDocuments returns the draft's typed required documents.
func (d *PropertyDraft) RequiredDocuments() []MediaFile {
	return d.mediaOfKind(MediaRequiredDocument)
}

// Brochure returns the draft's project brochure, or nil if none is attached.
func (d *PropertyDraft) Brochure() *MediaFile {
	for i := range d.Media {
		if d.Media[i].Kind == MediaBrochure {
			return &d.Media[i]
		}
	}
	return nil
}

// ImagesByCategory derives the category-to-images view from the media list.
// Uncategorised images are grouped under the empty key.
func (d *PropertyDraft) ImagesByCategory() map[string][]MediaFile {
	out := make(map[string][]MediaFile)
	for _, f := range d.Media {
		if f.Kind == MediaImage {
			out[f.Category] = append(out[f.Category], f)
		}
	}
	return out
}

// CoverImage returns the designated cover image. When no image carries the
// cover role the first uploaded image stands in, matching the listing card's
// thumbnail behaviour. Returns nil when the draft has no images.
func (d *PropertyDraft) CoverImage() *MediaFile {
	var first *MediaFile
	for i := range d.Media {
		f := &d.Media[i]
		if f.Kind != MediaImage {
			continue
		}
		if f.Cover {
			return f
		}
		if first == nil {
			first = f
		}
	}
	return first
}

// FindMedia returns the media entry with the given blob handle ID.
func (d *PropertyDraft) FindMedia(id string) *MediaFile {
	for i := range d.Media {
		if d.Media[i].ID == id {
			return &d.Media[i]
		}
	}
	return nil
}

// HasRequiredDocumentType reports whether a required document already uses
// the given type label.
func (d *PropertyDraft) HasRequiredDocumentType(label string) bool {
	for _, f := range d.Media {
		if f.Kind == MediaRequiredDocument && f.DocumentType == label {
			return true
		}
	}
	return false
}

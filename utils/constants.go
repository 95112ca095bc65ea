// File: utils/constants.go
package utils

import "time"

// MaxUploadBytes is the per-file size ceiling for wizard uploads (10 MB).
// Oversized files are rejected with a reported error, never silently dropped.
const MaxUploadBytes = 10 << 20

// ListingCachePrefix is the prefix used for Redis listing query cache keys.
const ListingCachePrefix = "listings:"

// ListingCacheTTL is the time-to-live for cached listing query results.
const ListingCacheTTL = 5 * time.Minute

// DraftKeyPrefix is the prefix under which wizard sessions are persisted.
const DraftKeyPrefix = "propertyDraft:"

// CustomDocumentType is the free-form required-document label. It does not
// count towards distinct-type coverage of the submission gate.
const CustomDocumentType = "Other"

// RequiredDocumentTypes is the fixed vocabulary of required-document labels.
// A submission needs at least three required documents, or coverage of at
// least three distinct types from this list.
var RequiredDocumentTypes = []string{
	"Property ownership documents",
	"Building approvals and permits",
	"Property tax receipts",
	"NOC certificates",
	"Floor plans or blueprints",
}

// Amenities is the fixed amenity vocabulary offered by the listing form.
// Anything outside it goes into the draft's custom amenities.
var Amenities = []string{
	"Swimming Pool",
	"Gym",
	"Parking",
	"Security",
	"Garden",
	"Power Backup",
	"Elevator",
	"Conference Room",
	"Reception",
	"Balcony",
	"Air Conditioning",
	"Furnished",
}

// ImageCategories is the fixed set of image-category labels.
var ImageCategories = []string{
	"Exterior",
	"Interior",
	"Kitchen",
	"Bedroom",
	"Bathroom",
	"Floor Plan",
}

// KnownRequiredDocumentType reports whether label is in the fixed vocabulary.
func KnownRequiredDocumentType(label string) bool {
	for _, t := range RequiredDocumentTypes {
		if t == label {
			return true
		}
	}
	return false
}

// KnownAmenity reports whether name is in the fixed amenity vocabulary.
func KnownAmenity(name string) bool {
	for _, a := range Amenities {
		if a == name {
			return true
		}
	}
	return false
}

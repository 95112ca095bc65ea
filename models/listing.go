package models

import "time"

// PropertyType enumerates the supported kinds of property.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyVilla      PropertyType = "villa"
	PropertyCommercial PropertyType = "commercial"
)

// ValidPropertyType reports whether t is one of the supported property types.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyVilla, PropertyCommercial:
		return true
	}
	return false
}

// SellerType enumerates who is listing the property.
type SellerType string

const (
	SellerOwner   SellerType = "owner"
	SellerAgent   SellerType = "agent"
	SellerCompany SellerType = "company"
)

// ValidSellerType reports whether t is one of the supported seller types.
func ValidSellerType(t SellerType) bool {
	switch t {
	case SellerOwner, SellerAgent, SellerCompany:
		return true
	}
	return false
}

// ListingIntent enumerates how a property is being offered.
type ListingIntent string

const (
	IntentSale       ListingIntent = "sale"
	IntentRent       ListingIntent = "rent"
	IntentUrgentSale ListingIntent = "urgent-sale"
)

// ValidListingIntent reports whether i is one of the supported intents.
func ValidListingIntent(i ListingIntent) bool {
	switch i {
	case IntentSale, IntentRent, IntentUrgentSale:
		return true
	}
	return false
}

// ListingStatus enumerates the lifecycle states of a published listing.
type ListingStatus string

const (
	StatusActive ListingStatus = "active"
	StatusSold   ListingStatus = "sold"
	StatusRented ListingStatus = "rented"
)

// ValidListingStatus reports whether s is one of the supported statuses.
func ValidListingStatus(s ListingStatus) bool {
	switch s {
	case StatusActive, StatusSold, StatusRented:
		return true
	}
	return false
}

// GeoPoint is an optional latitude/longitude pair for map placement.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Listing is a published property record. It is produced once by the wizard's
// submission assembler and owned by the listing repository afterwards. Price
// is set at creation and never changed by the edit flow.
type Listing struct {
	ID             string              `bson:"id" json:"id"`
	Title          string              `bson:"title" json:"title"`
	PropertyType   PropertyType        `bson:"propertyType" json:"propertyType"`
	SellerType     SellerType          `bson:"sellerType" json:"sellerType"`
	BHK            string              `bson:"bhk" json:"bhk"`
	AreaSqFt       float64             `bson:"areaSqFt" json:"areaSqFt"`
	Price          float64             `bson:"price" json:"price"`
	ListingIntent  ListingIntent       `bson:"listingIntent" json:"listingIntent"`
	Status         ListingStatus       `bson:"status" json:"status"`
	BiddingEnabled bool                `bson:"biddingEnabled" json:"biddingEnabled"`
	Description    string              `bson:"description" json:"description"`

	Address  string    `bson:"address" json:"address"`
	City     string    `bson:"city" json:"city"`
	State    string    `bson:"state" json:"state"`
	Pincode  string    `bson:"pincode" json:"pincode"`
	Landmark string    `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Location *GeoPoint `bson:"location,omitempty" json:"coordinates,omitempty"`

	Amenities       []string `bson:"amenities,omitempty" json:"amenities,omitempty"`
	CustomAmenities []string `bson:"customAmenities,omitempty" json:"customAmenities,omitempty"`

	Images            []string            `bson:"images,omitempty" json:"images,omitempty"`
	CoverImage        string              `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	ImageCategories   map[string][]string `bson:"imageCategories,omitempty" json:"imageCategories,omitempty"`
	Videos            []string            `bson:"videos,omitempty" json:"videos,omitempty"`
	VirtualTourURL    string              `bson:"virtualTourUrl,omitempty" json:"virtualTourUrl,omitempty"`
	RequiredDocuments []ListingDocument   `bson:"requiredDocuments,omitempty" json:"requiredDocuments,omitempty"`
	Documents         []string            `bson:"documents,omitempty" json:"documents,omitempty"`
	ProjectBrochure   string              `bson:"projectBrochure,omitempty" json:"projectBrochure,omitempty"`

	Views     int `bson:"views" json:"views"`
	Inquiries int `bson:"inquiries" json:"inquiries"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ListingDocument is a persisted required document with its type label.
type ListingDocument struct {
	URL        string `bson:"url" json:"url"`
	Type       string `bson:"type" json:"type"`
	CustomType bool   `bson:"customType,omitempty" json:"customType,omitempty"`
}

// ListingFilters narrows dashboard browse queries.
type ListingFilters struct {
	Status string `form:"status" json:"status"`
	Intent string `form:"intent" json:"intent"`
	City   string `form:"city" json:"city"`
	Search string `form:"search" json:"search"`
}

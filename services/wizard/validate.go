package wizard

import (
	"regexp"
	"strings"

	"estatedesk/models"
	"estatedesk/utils"
)

// StepResult is the outcome of validating one wizard step. Failures are
// field-scoped messages for inline rendering; validation never panics and
// never returns an error.
type StepResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// MinRequiredDocuments is the submission gate on the documents step: at least
// this many required documents by count, or by distinct-type coverage.
const MinRequiredDocuments = 3

// Validate checks the draft against the given step's required fields. It is a
// pure function of its inputs.
func Validate(step models.WizardStep, draft *models.PropertyDraft) StepResult {
	errs := make(map[string]string)

	switch step {
	case models.StepDetails:
		validateDetails(draft, errs)
	case models.StepDocuments:
		validateDocuments(draft, errs)
	case models.StepIntent:
		// Listing intent defaults on the details step; nothing blocks here.
	case models.StepLocation:
		validateLocation(draft, errs)
	case models.StepMedia:
		// Media is optional; upload constraints are enforced on attach.
	case models.StepReview:
		validateDocuments(draft, errs)
		if !draft.TermsAccepted {
			errs["termsAccepted"] = "You must accept the terms and conditions"
		}
	}

	return StepResult{Valid: len(errs) == 0, Errors: errs}
}

func validateDetails(draft *models.PropertyDraft, errs map[string]string) {
	if strings.TrimSpace(draft.Title) == "" {
		errs["title"] = "Property title is required"
	}
	if draft.PropertyType == "" {
		errs["propertyType"] = "Property type is required"
	} else if !models.ValidPropertyType(draft.PropertyType) {
		errs["propertyType"] = "Unknown property type"
	}
	if draft.SellerType == "" {
		errs["sellerType"] = "Seller type is required"
	} else if !models.ValidSellerType(draft.SellerType) {
		errs["sellerType"] = "Unknown seller type"
	}

	// Commercial properties describe a space type in the BHK slot; everything
	// else needs a BHK configuration.
	if strings.TrimSpace(draft.BHK) == "" {
		if draft.PropertyType == models.PropertyCommercial {
			errs["bhk"] = "Space type is required"
		} else {
			errs["bhk"] = "BHK configuration is required"
		}
	}

	if draft.AreaSqFt <= 0 {
		errs["areaSqFt"] = "Area must be greater than 0"
	}
	if draft.Price <= 0 {
		errs["price"] = "Price must be greater than 0"
	}
	if strings.TrimSpace(draft.Description) == "" {
		errs["description"] = "Description is required"
	}
	if draft.ListingIntent == "" {
		errs["listingIntent"] = "Please select listing intent"
	} else if !models.ValidListingIntent(draft.ListingIntent) {
		errs["listingIntent"] = "Unknown listing intent"
	}
}

func validateDocuments(draft *models.PropertyDraft, errs map[string]string) {
	docs := draft.RequiredDocuments()
	if len(docs) >= MinRequiredDocuments {
		return
	}
	if distinctRequiredTypes(docs) >= MinRequiredDocuments {
		return
	}
	errs["requiredDocuments"] = "Upload at least 3 required documents"
}

// distinctRequiredTypes counts the distinct fixed-vocabulary types in use.
// The free-form "Other" label never counts towards coverage.
func distinctRequiredTypes(docs []models.MediaFile) int {
	seen := make(map[string]struct{})
	for _, d := range docs {
		if d.CustomType || d.DocumentType == utils.CustomDocumentType {
			continue
		}
		seen[d.DocumentType] = struct{}{}
	}
	return len(seen)
}

func validateLocation(draft *models.PropertyDraft, errs map[string]string) {
	if strings.TrimSpace(draft.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(draft.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(draft.State) == "" {
		errs["state"] = "State is required"
	}
	if !pincodePattern.MatchString(draft.Pincode) {
		errs["pincode"] = "Pincode must be a 6-digit number"
	}
}

// NormalizeBHK upper-cases a BHK value ("3bhk" -> "3BHK"). Applied by the
// draft update operation as an explicit normalization rule rather than a
// keystroke side effect.
func NormalizeBHK(bhk string) string {
	return strings.ToUpper(strings.TrimSpace(bhk))
}

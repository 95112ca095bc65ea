package wizard

import (
	"errors"
	"fmt"

	"estatedesk/models"
)

// Upload constraint errors. Recoverable by user correction; the API surfaces
// them as 4xx responses, never as silent drops.
var (
	ErrFileTooLarge          = errors.New("file exceeds the 10 MB upload limit")
	ErrDuplicateDocumentType = errors.New("a required document of this type is already attached")
	ErrMissingDocumentType   = errors.New("required documents need a document type")
	ErrUnknownMedia          = errors.New("no such file on this draft")
	ErrNotAnImage            = errors.New("only images can be the cover photo")
	ErrUnknownMediaKind      = errors.New("unknown media kind")
)

// Session and submission errors.
var (
	ErrSessionNotFound    = errors.New("wizard session not found")
	ErrSubmissionInFlight = errors.New("a submission is already in progress for this session")
	ErrNotOnReview        = errors.New("submission is only available from the review step")
	ErrPriceImmutable     = errors.New("price cannot be changed after a listing is created")
)

// ValidationError carries a step's field-level failures when an operation is
// rejected wholesale (most importantly at submission time). Step-gating
// itself reports failures as data via StepResult, not as errors.
type ValidationError struct {
	Step   models.WizardStep
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s step (%d field(s))", e.Step, len(e.Fields))
}

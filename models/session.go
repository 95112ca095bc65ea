package models

import "time"

// WizardStep names one screen of the six-screen listing wizard.
type WizardStep string

const (
	StepDetails   WizardStep = "details"
	StepDocuments WizardStep = "documents"
	StepIntent    WizardStep = "intent"
	StepLocation  WizardStep = "location"
	StepMedia     WizardStep = "media"
	StepReview    WizardStep = "review"
)

// WizardSteps is the fixed step order. Navigation is strictly linear:
// forward one step at a time (gated on validation) or backward one step.
var WizardSteps = []WizardStep{
	StepDetails,
	StepDocuments,
	StepIntent,
	StepLocation,
	StepMedia,
	StepReview,
}

// WizardSession holds the wizard state between requests: the draft, the step
// cursor and the in-flight submission guard. It is the unit the draft store
// persists, restored whenever the wizard is reopened.
type WizardSession struct {
	SessionID  string        `json:"sessionId"`
	Draft      PropertyDraft `json:"draft"`
	StepIndex  int           `json:"stepIndex"`
	Submitting bool          `json:"submitting,omitempty"`

	// EditListingID is set when the session edits an existing listing; the
	// price is locked for such sessions.
	EditListingID string `json:"editListingId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CurrentStep returns the step the cursor points at.
func (s *WizardSession) CurrentStep() WizardStep {
	if s.StepIndex < 0 || s.StepIndex >= len(WizardSteps) {
		return StepDetails
	}
	return WizardSteps[s.StepIndex]
}

// IsFirst reports whether the cursor is on the first step.
func (s *WizardSession) IsFirst() bool { return s.StepIndex == 0 }

// IsLast reports whether the cursor is on the review step.
func (s *WizardSession) IsLast() bool { return s.StepIndex == len(WizardSteps)-1 }

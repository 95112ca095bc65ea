package wizard

import "estatedesk/models"

// The sequencer is a linear state machine over the six wizard steps. Forward
// transitions are gated on the current step's validation; backward ones are
// always allowed and never discard entered data. There is no direct jump:
// the progress indicator is read-only.

// Advance validates the session's current step and, when valid, moves the
// cursor forward. At the last step it validates without moving. The returned
// StepResult carries the field errors to render when the step is invalid.
func Advance(sess *models.WizardSession) StepResult {
	result := Validate(sess.CurrentStep(), &sess.Draft)
	if !result.Valid {
		return result
	}
	if !sess.IsLast() {
		sess.StepIndex++
	}
	return result
}

// Retreat moves the cursor back one step without validating. No-op on the
// first step.
func Retreat(sess *models.WizardSession) {
	if !sess.IsFirst() {
		sess.StepIndex--
	}
}

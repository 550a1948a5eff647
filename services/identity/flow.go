package identity

import (
	"fmt"

	"bookingportal/models"
)

// FlowState is the single UI target selected for an identity-resolution screen.
type FlowState string

const (
	FlowError               FlowState = "ERROR"
	FlowNoSession           FlowState = "NO_SESSION"
	FlowSessionNoUserNoAuth FlowState = "SESSION_NO_USER_NO_AUTH"
	FlowSessionUserNoAuth   FlowState = "SESSION_USER_NO_AUTH"
	FlowVerifyEmail         FlowState = "VERIFY_EMAIL"
	FlowVerifyMobile        FlowState = "VERIFY_MOBILE"
	FlowAttachable          FlowState = "ATTACHABLE"
	// FlowDone is ATTACHABLE after the attach already happened: the session names
	// the authenticated user and nothing is pending.
	FlowDone FlowState = "DONE"
)

// FlowInput is everything the resolver looks at. User is the pending user, or the
// authenticated user's requirements when nothing is pending.
type FlowInput struct {
	Session *models.AppointmentSession
	Auth    *models.AuthSnapshot
	User    *models.PendingUser
	Err     error
}

// FlowResult is the resolved state plus the details a screen needs to render it.
type FlowResult struct {
	State      FlowState       `json:"state"`
	Mismatch   bool            `json:"mismatch"`
	NextStep   models.NextStep `json:"nextStep,omitempty"`
	Diagnostic string          `json:"diagnostic,omitempty"`
}

// CanAttach reports whether the attach action is enabled.
func (r FlowResult) CanAttach() bool {
	return r.State == FlowAttachable && !r.Mismatch
}

// Mismatch is true iff the session names a user, the request is authenticated, and
// the two differ.
func Mismatch(session *models.AppointmentSession, auth *models.AuthSnapshot) bool {
	if session == nil || session.UserID == nil || !auth.Authenticated() {
		return false
	}
	return *session.UserID != *auth.AuthenticatedUserID
}

// ResolveFlow is pure and total. Evaluation order is fixed:
// error > missing session > no bound user and no auth > bound user without matching
// auth > verify email > verify mobile > attachable.
func ResolveFlow(in FlowInput) FlowResult {
	if in.Err != nil {
		return FlowResult{State: FlowError, Diagnostic: in.Err.Error()}
	}
	if in.Session == nil {
		return FlowResult{State: FlowNoSession}
	}

	authed := in.Auth.Authenticated()
	if in.Session.UserID == nil && !authed {
		return FlowResult{State: FlowSessionNoUserNoAuth}
	}
	if in.Session.UserID != nil && (!authed || *in.Auth.AuthenticatedUserID != *in.Session.UserID) {
		return FlowResult{State: FlowSessionUserNoAuth, Mismatch: Mismatch(in.Session, in.Auth)}
	}

	step := models.NextStepNone
	if in.User != nil {
		step = in.User.NextStep
	}

	switch step {
	case models.NextStepCollectEmail, models.NextStepVerifyEmail:
		return FlowResult{State: FlowVerifyEmail, NextStep: step}
	case models.NextStepCollectMobile, models.NextStepVerifyMobile:
		return FlowResult{State: FlowVerifyMobile, NextStep: step}
	case models.NextStepAttachSession:
		return FlowResult{State: FlowAttachable, NextStep: step}
	case models.NextStepNone, models.NextStepDone:
		if in.Session.UserID != nil {
			return FlowResult{State: FlowDone, NextStep: models.NextStepDone}
		}
		return FlowResult{State: FlowAttachable, NextStep: step}
	default:
		return FlowResult{
			State:      FlowError,
			NextStep:   step,
			Diagnostic: fmt.Sprintf("unrecognized next step %q", string(step)),
		}
	}
}

// stateForStep maps a server next step to the screen that handles it.
func stateForStep(step models.NextStep) FlowState {
	switch step {
	case models.NextStepCollectEmail, models.NextStepVerifyEmail:
		return FlowVerifyEmail
	case models.NextStepCollectMobile, models.NextStepVerifyMobile:
		return FlowVerifyMobile
	case models.NextStepNone, models.NextStepAttachSession:
		return FlowAttachable
	case models.NextStepDone:
		return FlowDone
	}
	return FlowError
}

package booking

import (
	"context"

	"bookingportal/models"
	"bookingportal/services/identity"
	"bookingportal/services/remote"

	"go.uber.org/zap"
)

// StepResult is what a loader or action hands back: either a redirect or a view.
type StepResult struct {
	Redirect string
	View     any
}

func redirect(to string) *StepResult {
	return &StepResult{Redirect: to}
}

// Pipeline drives profile -> services -> time -> overview -> submit. Every step reads
// the session fresh from the API.
type Pipeline struct {
	API       remote.SelectionAPI
	Identity  *identity.Resolver
	EntryPath string
	Logger    *zap.Logger
}

func NewPipeline(api remote.SelectionAPI, resolver *identity.Resolver, entryPath string, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if entryPath == "" {
		entryPath = "/"
	}
	return &Pipeline{API: api, Identity: resolver, EntryPath: entryPath, Logger: logger}
}

// loadSession returns nil when the session is missing or cannot be loaded; booking
// cannot resume from there.
func (p *Pipeline) loadSession(ctx context.Context, req identity.RequestContext) *models.AppointmentSession {
	if req.SessionID == "" {
		return nil
	}
	session, err := p.API.GetSession(ctx, req.AccessToken, req.SessionID)
	if err != nil {
		if !remote.IsNotFound(err) {
			p.Logger.Warn("booking: session lookup failed", zap.String("sessionId", req.SessionID), zap.Error(err))
		}
		return nil
	}
	return session
}

// FirstIncompleteRoute is the earliest selection step the session has not satisfied.
func FirstIncompleteRoute(session *models.AppointmentSession) string {
	switch {
	case session.SelectedProfileID == nil:
		return RouteProfile
	case !session.HasServices():
		return RouteServices
	case session.SelectedStartTime == nil:
		return RouteTime
	}
	return RouteOverview
}

// ShouldSkipProfile reports whether the profile step can be skipped: a profile is
// already chosen and the server does not ask for the step to be shown again.
func ShouldSkipProfile(session *models.AppointmentSession) bool {
	return session.SelectedProfileID != nil && !session.HasStep(models.StepSelectProfile)
}

func errorMessage(err error) string {
	return remote.UserMessage(err, "")
}

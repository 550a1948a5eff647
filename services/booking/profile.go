package booking

import (
	"context"
	"fmt"

	"bookingportal/models"
	"bookingportal/services/identity"

	"go.uber.org/zap"
)

// ProfileView lists the profiles a visitor can book with.
type ProfileView struct {
	Profiles          []models.Profile `json:"profiles"`
	SelectedProfileID *int             `json:"selectedProfileId,omitempty"`
	Error             string           `json:"error,omitempty"`
}

func (p *Pipeline) LoadProfile(ctx context.Context, req identity.RequestContext) *StepResult {
	session := p.loadSession(ctx, req)
	if session == nil {
		return redirect(p.EntryPath)
	}
	if ShouldSkipProfile(session) {
		return redirect(RouteServices)
	}

	view := &ProfileView{SelectedProfileID: session.SelectedProfileID}
	profiles, err := p.API.GetAppointmentSessionProfiles(ctx, req.AccessToken, req.SessionID)
	if err != nil {
		p.Logger.Warn("booking: load profiles failed", zap.Error(err))
		view.Error = errorMessage(err)
		view.Profiles = []models.Profile{}
		return &StepResult{View: view}
	}
	view.Profiles = profiles
	return &StepResult{View: view}
}

func (p *Pipeline) SelectProfile(ctx context.Context, req identity.RequestContext, profileID int) (*StepResult, error) {
	if profileID <= 0 {
		return nil, ErrInvalidProfile
	}
	if session := p.loadSession(ctx, req); session == nil {
		return redirect(p.EntryPath), nil
	}
	if err := p.API.SelectAppointmentSessionProfile(ctx, req.AccessToken, req.SessionID, profileID); err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return redirect(RouteServices), nil
}

package booking

import (
	"context"
	"fmt"
	"slices"
	"time"

	"bookingportal/models"
	"bookingportal/services/identity"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OverviewView is the read-only summary shown before submission.
type OverviewView struct {
	SessionID string           `json:"sessionId"`
	Profile   *models.Profile  `json:"profile,omitempty"`
	Services  []models.Service `json:"services"`
	Totals    Totals           `json:"totals"`
	StartTime time.Time        `json:"startTime"`
	Error     string           `json:"error,omitempty"`
}

// ConfirmedView is returned after a successful submission.
type ConfirmedView struct {
	Appointment *models.Appointment `json:"appointment"`
}

// gate checks everything that must hold before the overview or submit: a loadable
// session, all selections, and an attached identity.
func (p *Pipeline) gate(snap *identity.Snapshot) *StepResult {
	if snap.Result.State == identity.FlowNoSession || snap.Session == nil {
		return redirect(p.EntryPath)
	}
	if route := FirstIncompleteRoute(snap.Session); route != RouteOverview {
		return redirect(route)
	}
	if snap.Result.State != identity.FlowDone {
		return redirect(RouteIdentify)
	}
	return nil
}

func (p *Pipeline) LoadOverview(ctx context.Context, req identity.RequestContext) *StepResult {
	snap := p.Identity.Load(ctx, req)
	if res := p.gate(snap); res != nil {
		return res
	}
	session := snap.Session
	view := &OverviewView{
		SessionID: session.SessionID,
		Services:  []models.Service{},
		StartTime: session.SelectedStartTime.In(canonicalLocation),
	}

	var profiles []models.Profile
	var groups []models.ServiceGroup
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = p.API.GetAppointmentSessionProfiles(gctx, req.AccessToken, req.SessionID)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = p.API.GetAppointmentSessionProfileServices(gctx, req.AccessToken, req.SessionID)
		return err
	})
	if err := g.Wait(); err != nil {
		p.Logger.Warn("booking: load overview failed", zap.Error(err))
		view.Error = errorMessage(err)
		return &StepResult{View: view}
	}

	for i := range profiles {
		if profiles[i].ID == *session.SelectedProfileID {
			view.Profile = &profiles[i]
			break
		}
	}
	for _, group := range groups {
		for _, svc := range group.Services {
			if slices.Contains(session.SelectedServiceIDs, svc.ID) {
				view.Services = append(view.Services, svc)
			}
		}
	}
	view.Totals = ComputeTotals(groups, session.SelectedServiceIDs)
	return &StepResult{View: view}
}

// Submit finalizes the session into an appointment. Not idempotent: the API rejects
// a second submission of the same session.
func (p *Pipeline) Submit(ctx context.Context, req identity.RequestContext) (*StepResult, error) {
	snap := p.Identity.Load(ctx, req)
	if snap.Session == nil {
		return nil, ErrNoSession
	}
	if res := p.gate(snap); res != nil {
		return res, nil
	}
	appointment, err := p.API.SubmitAppointmentSession(ctx, req.AccessToken, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("submit session: %w", err)
	}
	p.Logger.Info("booking: session submitted",
		zap.String("sessionId", req.SessionID),
		zap.Int("appointmentId", appointment.ID))
	return &StepResult{
		Redirect: fmt.Sprintf("%s?appointmentId=%d", RouteConfirmed, appointment.ID),
		View:     &ConfirmedView{Appointment: appointment},
	}, nil
}

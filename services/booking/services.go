package booking

import (
	"context"
	"fmt"
	"slices"

	"bookingportal/models"
	"bookingportal/services/identity"

	"go.uber.org/zap"
)

// Totals are advisory running totals; the API computes the authoritative ones.
type Totals struct {
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ComputeTotals sums price and duration of the selected services.
func ComputeTotals(groups []models.ServiceGroup, selected []int) Totals {
	var totals Totals
	for _, group := range groups {
		for _, svc := range group.Services {
			if slices.Contains(selected, svc.ID) {
				totals.Price += svc.Price
				totals.DurationMinutes += svc.DurationMinutes
			}
		}
	}
	return totals
}

// ServicesView lists service groups for the selected profile.
type ServicesView struct {
	Groups             []models.ServiceGroup `json:"groups"`
	SelectedServiceIDs []int                 `json:"selectedServiceIds"`
	Totals             Totals                `json:"totals"`
	Error              string                `json:"error,omitempty"`
}

func (p *Pipeline) LoadServices(ctx context.Context, req identity.RequestContext) *StepResult {
	session := p.loadSession(ctx, req)
	if session == nil {
		return redirect(p.EntryPath)
	}
	if session.SelectedProfileID == nil {
		return redirect(RouteProfile)
	}

	selected := session.SelectedServiceIDs
	if selected == nil {
		selected = []int{}
	}
	view := &ServicesView{SelectedServiceIDs: selected, Groups: []models.ServiceGroup{}}
	groups, err := p.API.GetAppointmentSessionProfileServices(ctx, req.AccessToken, req.SessionID)
	if err != nil {
		p.Logger.Warn("booking: load services failed", zap.Error(err))
		view.Error = errorMessage(err)
		return &StepResult{View: view}
	}
	view.Groups = groups
	view.Totals = ComputeTotals(groups, selected)
	return &StepResult{View: view}
}

// SelectServices posts the whole chosen set, never a diff.
func (p *Pipeline) SelectServices(ctx context.Context, req identity.RequestContext, serviceIDs []int) (*StepResult, error) {
	ids := uniqueIDs(serviceIDs)
	if len(ids) == 0 {
		return nil, ErrNoServicesSelected
	}
	session := p.loadSession(ctx, req)
	if session == nil {
		return redirect(p.EntryPath), nil
	}
	if session.SelectedProfileID == nil {
		return redirect(RouteProfile), nil
	}
	if err := p.API.SelectAppointmentSessionProfileServices(ctx, req.AccessToken, req.SessionID, ids); err != nil {
		return nil, fmt.Errorf("select services: %w", err)
	}
	return redirect(RouteTime), nil
}

func uniqueIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

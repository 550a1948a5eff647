package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bookingportal/models"
	"bookingportal/services/identity"

	"go.uber.org/zap"
)

// SlotView is one selectable start time, rendered in the canonical zone.
type SlotView struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Value     string    `json:"value"`
	Selected  bool      `json:"selected"`
}

// HourGroup holds the slots starting within one wall-clock hour.
type HourGroup struct {
	Hour  time.Time  `json:"hour"`
	Slots []SlotView `json:"slots"`
}

// WeekGroup holds one ISO week of slots.
type WeekGroup struct {
	Year  int         `json:"year"`
	Week  int         `json:"week"`
	Hours []HourGroup `json:"hours"`
}

// GroupSlots sorts slots and groups them by ISO week, then by hour, in Europe/Oslo.
// selected may be nil.
func GroupSlots(slots []models.TimeSlot, selected *time.Time) []WeekGroup {
	sorted := make([]models.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	weeks := []WeekGroup{}
	for _, slot := range sorted {
		start := slot.StartTime.In(canonicalLocation)
		year, week := start.ISOWeek()
		hour := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, canonicalLocation)

		if len(weeks) == 0 || weeks[len(weeks)-1].Year != year || weeks[len(weeks)-1].Week != week {
			weeks = append(weeks, WeekGroup{Year: year, Week: week})
		}
		wg := &weeks[len(weeks)-1]
		if len(wg.Hours) == 0 || !wg.Hours[len(wg.Hours)-1].Hour.Equal(hour) {
			wg.Hours = append(wg.Hours, HourGroup{Hour: hour})
		}
		hg := &wg.Hours[len(wg.Hours)-1]
		hg.Slots = append(hg.Slots, SlotView{
			StartTime: start,
			EndTime:   slot.EndTime.In(canonicalLocation),
			Value:     NormalizeStartTime(start),
			Selected:  selected != nil && SameSlot(start, *selected),
		})
	}
	return weeks
}

// TimeView lists available start times.
type TimeView struct {
	Weeks             []WeekGroup `json:"weeks"`
	SelectedStartTime *time.Time  `json:"selectedStartTime,omitempty"`
	Error             string      `json:"error,omitempty"`
}

// LoadTime lists slots from the given day (zero means the API default).
func (p *Pipeline) LoadTime(ctx context.Context, req identity.RequestContext, from time.Time) *StepResult {
	session := p.loadSession(ctx, req)
	if session == nil {
		return redirect(p.EntryPath)
	}
	if session.SelectedProfileID == nil || !session.HasServices() {
		return redirect(FirstIncompleteRoute(session))
	}

	view := &TimeView{Weeks: []WeekGroup{}}
	if session.SelectedStartTime != nil {
		selected := session.SelectedStartTime.In(canonicalLocation)
		view.SelectedStartTime = &selected
	}
	slots, err := p.API.GetAppointmentSessionSchedules(ctx, req.AccessToken, req.SessionID, from)
	if err != nil {
		p.Logger.Warn("booking: load schedules failed", zap.Error(err))
		view.Error = errorMessage(err)
		return &StepResult{View: view}
	}
	view.Weeks = GroupSlots(slots, view.SelectedStartTime)
	return &StepResult{View: view}
}

// SubmitStartTime normalizes the chosen time to Europe/Oslo before posting it.
func (p *Pipeline) SubmitStartTime(ctx context.Context, req identity.RequestContext, raw string) (*StepResult, error) {
	start, err := ParseStartTime(raw)
	if err != nil {
		return nil, err
	}
	session := p.loadSession(ctx, req)
	if session == nil {
		return redirect(p.EntryPath), nil
	}
	if session.SelectedProfileID == nil || !session.HasServices() {
		return redirect(FirstIncompleteRoute(session)), nil
	}
	if err := p.API.SubmitAppointmentSessionStartTime(ctx, req.AccessToken, req.SessionID, NormalizeStartTime(start)); err != nil {
		return nil, fmt.Errorf("submit start time: %w", err)
	}
	return redirect(RouteIdentify), nil
}

// ParseFromDay reads a YYYY-MM-DD week navigation parameter in Europe/Oslo.
func ParseFromDay(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02", raw, canonicalLocation)
	if err != nil {
		return time.Time{}
	}
	return t
}

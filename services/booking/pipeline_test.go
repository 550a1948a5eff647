package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookingportal/models"
	"bookingportal/services/identity"
	"bookingportal/services/remote"
)

func TestLoadersRedirectToEntryWithoutSession(t *testing.T) {
	api := &fakeAPI{sessionErr: &remote.APIError{Status: 404, Message: "not found"}}
	p := newTestPipeline(api)
	ctx := context.Background()

	results := map[string]*StepResult{
		"profile":  p.LoadProfile(ctx, testReq),
		"services": p.LoadServices(ctx, testReq),
		"time":     p.LoadTime(ctx, testReq, time.Time{}),
		"overview": p.LoadOverview(ctx, testReq),
	}
	for name, res := range results {
		if res.Redirect != "/start" {
			t.Errorf("%s: expected redirect to /start, got %q", name, res.Redirect)
		}
	}
}

func TestLoadProfileSkipRule(t *testing.T) {
	tests := []struct {
		name     string
		session  *models.AppointmentSession
		redirect string
	}{
		{"no profile chosen", &models.AppointmentSession{SessionID: "s-1"}, ""},
		{"chosen and step not listed", &models.AppointmentSession{SessionID: "s-1", SelectedProfileID: intPtr(4)}, RouteServices},
		{"chosen but step listed", &models.AppointmentSession{
			SessionID: "s-1", SelectedProfileID: intPtr(4), Steps: []models.Step{models.StepSelectProfile},
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{session: tt.session, profiles: []models.Profile{{ID: 4, Name: "Kari"}}}
			res := newTestPipeline(api).LoadProfile(context.Background(), testReq)
			if res.Redirect != tt.redirect {
				t.Fatalf("expected redirect %q, got %q", tt.redirect, res.Redirect)
			}
			if tt.redirect == "" {
				view := res.View.(*ProfileView)
				if len(view.Profiles) != 1 {
					t.Errorf("expected profiles to be listed, got %+v", view.Profiles)
				}
			}
		})
	}
}

func TestSelectProfileRejectsMissingID(t *testing.T) {
	api := &fakeAPI{session: &models.AppointmentSession{SessionID: "s-1"}}
	_, err := newTestPipeline(api).SelectProfile(context.Background(), testReq, 0)
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
	if api.called("SelectAppointmentSessionProfile") {
		t.Error("API must not be called for an invalid profile")
	}
}

func TestSelectServicesPostsFullDeduplicatedSet(t *testing.T) {
	api := &fakeAPI{session: &models.AppointmentSession{SessionID: "s-1", SelectedProfileID: intPtr(4)}}
	res, err := newTestPipeline(api).SelectServices(context.Background(), testReq, []int{3, 1, 3, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Redirect != RouteTime {
		t.Errorf("expected redirect to %s, got %q", RouteTime, res.Redirect)
	}
	if len(api.selectedServices) != 2 || api.selectedServices[0] != 3 || api.selectedServices[1] != 1 {
		t.Errorf("unexpected posted set %v", api.selectedServices)
	}

	if _, err := newTestPipeline(api).SelectServices(context.Background(), testReq, nil); !errors.Is(err, ErrNoServicesSelected) {
		t.Errorf("expected ErrNoServicesSelected, got %v", err)
	}
}

func TestComputeTotals(t *testing.T) {
	groups := []models.ServiceGroup{
		{ID: 1, Services: []models.Service{{ID: 1, Price: 450, DurationMinutes: 30}, {ID: 2, Price: 200, DurationMinutes: 15}}},
		{ID: 2, Services: []models.Service{{ID: 3, Price: 120.5, DurationMinutes: 10}}},
	}
	totals := ComputeTotals(groups, []int{1, 3})
	if totals.Price != 570.5 || totals.DurationMinutes != 40 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestLoadServicesKeepsSelectionOnError(t *testing.T) {
	api := &fakeAPI{
		session:   &models.AppointmentSession{SessionID: "s-1", SelectedProfileID: intPtr(4), SelectedServiceIDs: []int{2}},
		groupsErr: &remote.APIError{Status: 500, Message: "Service list unavailable"},
	}
	res := newTestPipeline(api).LoadServices(context.Background(), testReq)
	view, ok := res.View.(*ServicesView)
	if !ok {
		t.Fatalf("expected services view, got %+v", res)
	}
	if view.Error != "Service list unavailable" {
		t.Errorf("unexpected error message %q", view.Error)
	}
	if len(view.SelectedServiceIDs) != 1 || view.SelectedServiceIDs[0] != 2 {
		t.Errorf("selection lost: %v", view.SelectedServiceIDs)
	}
}

func TestSubmitStartTimeNormalizesToOslo(t *testing.T) {
	api := &fakeAPI{session: &models.AppointmentSession{
		SessionID: "s-1", SelectedProfileID: intPtr(4), SelectedServiceIDs: []int{1},
	}}
	res, err := newTestPipeline(api).SubmitStartTime(context.Background(), testReq, "2025-03-10T08:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Redirect != RouteIdentify {
		t.Errorf("expected redirect to %s, got %q", RouteIdentify, res.Redirect)
	}
	if api.startTime != "2025-03-10T09:00:00+01:00" {
		t.Errorf("expected Oslo-normalized time, got %q", api.startTime)
	}
}

func TestSubmitStartTimeRejectsGarbage(t *testing.T) {
	api := &fakeAPI{session: &models.AppointmentSession{SessionID: "s-1"}}
	_, err := newTestPipeline(api).SubmitStartTime(context.Background(), testReq, "tomorrow-ish")
	if !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got %v", err)
	}
}

func TestParseStartTimeReadsLocalTimeAsOslo(t *testing.T) {
	got, err := ParseStartTime("2025-07-01T14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if NormalizeStartTime(got) != "2025-07-01T14:30:00+02:00" {
		t.Errorf("unexpected normalization %s", NormalizeStartTime(got))
	}
	if !SameSlot(got, time.Date(2025, 7, 1, 12, 30, 0, 0, time.UTC)) {
		t.Error("expected the same instant to be the same slot")
	}
}

func TestGroupSlotsByWeekAndHour(t *testing.T) {
	oslo := Location()
	slots := []models.TimeSlot{
		{StartTime: time.Date(2025, 3, 11, 9, 30, 0, 0, oslo)},
		{StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, oslo)},
		{StartTime: time.Date(2025, 3, 10, 9, 15, 0, 0, oslo)},
		{StartTime: time.Date(2025, 3, 17, 8, 0, 0, 0, oslo)},
	}
	selected := time.Date(2025, 3, 10, 8, 15, 0, 0, time.UTC)
	weeks := GroupSlots(slots, &selected)

	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if weeks[0].Week != 11 || weeks[1].Week != 12 {
		t.Errorf("unexpected ISO weeks %d, %d", weeks[0].Week, weeks[1].Week)
	}
	if len(weeks[0].Hours) != 2 || len(weeks[0].Hours[0].Slots) != 2 {
		t.Fatalf("unexpected hour grouping %+v", weeks[0].Hours)
	}
	if !weeks[0].Hours[0].Slots[1].Selected || weeks[0].Hours[0].Slots[0].Selected {
		t.Error("expected only the 09:15 slot to be selected")
	}
}

func TestOverviewRequiresAttachedIdentity(t *testing.T) {
	complete := &models.AppointmentSession{
		SessionID:          "s-1",
		SelectedProfileID:  intPtr(4),
		SelectedServiceIDs: []int{1},
		SelectedStartTime:  timePtr(time.Date(2025, 3, 10, 9, 0, 0, 0, Location())),
	}

	t.Run("unauthenticated goes to identify", func(t *testing.T) {
		api := &fakeAPI{session: complete}
		res := newTestPipeline(api).LoadOverview(context.Background(), testReq)
		if res.Redirect != RouteIdentify {
			t.Fatalf("expected redirect to %s, got %q", RouteIdentify, res.Redirect)
		}
	})

	t.Run("missing start time goes to time", func(t *testing.T) {
		noTime := *complete
		noTime.SelectedStartTime = nil
		api := &fakeAPI{session: &noTime}
		res := newTestPipeline(api).LoadOverview(context.Background(), testReq)
		if res.Redirect != RouteTime {
			t.Fatalf("expected redirect to %s, got %q", RouteTime, res.Redirect)
		}
	})

	t.Run("attached session renders", func(t *testing.T) {
		attached := *complete
		attached.UserID = intPtr(7)
		api := &fakeAPI{
			session:  &attached,
			auth:     &models.AuthSnapshot{AuthenticatedUserID: intPtr(7), AccessToken: "tok"},
			profiles: []models.Profile{{ID: 4, Name: "Kari"}},
			groups:   []models.ServiceGroup{{ID: 1, Services: []models.Service{{ID: 1, Name: "Cut", Price: 450, DurationMinutes: 30}}}},
		}
		res := newTestPipeline(api).LoadOverview(context.Background(), testReq)
		view, ok := res.View.(*OverviewView)
		if !ok {
			t.Fatalf("expected overview, got %+v", res)
		}
		if view.Profile == nil || view.Profile.Name != "Kari" || len(view.Services) != 1 || view.Totals.Price != 450 {
			t.Errorf("unexpected overview %+v", view)
		}
	})
}

func TestSubmitRedirectsToConfirmed(t *testing.T) {
	session := &models.AppointmentSession{
		SessionID:          "s-1",
		UserID:             intPtr(7),
		SelectedProfileID:  intPtr(4),
		SelectedServiceIDs: []int{1},
		SelectedStartTime:  timePtr(time.Date(2025, 3, 10, 9, 0, 0, 0, Location())),
	}
	api := &fakeAPI{
		session:     session,
		auth:        &models.AuthSnapshot{AuthenticatedUserID: intPtr(7), AccessToken: "tok"},
		appointment: &models.Appointment{ID: 91},
	}
	res, err := newTestPipeline(api).Submit(context.Background(), testReq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Redirect != RouteConfirmed+"?appointmentId=91" {
		t.Fatalf("expected redirect to the confirmation of 91, got %q", res.Redirect)
	}
	if res.View.(*ConfirmedView).Appointment.ID != 91 {
		t.Errorf("unexpected confirmation %+v", res.View)
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	api := &fakeAPI{sessionErr: &remote.APIError{Status: 404, Message: "not found"}}
	_, err := newTestPipeline(api).Submit(context.Background(), testReq)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if api.called("SubmitAppointmentSession") {
		t.Error("submit must not reach the API without a session")
	}
}

func TestResumeSendsToFirstIncompleteStep(t *testing.T) {
	api := &fakeAPI{session: &models.AppointmentSession{SessionID: "s-1", SelectedProfileID: intPtr(4)}}
	if res := newTestPipeline(api).Resume(context.Background(), testReq); res.Redirect != RouteServices {
		t.Fatalf("expected redirect to %s, got %q", RouteServices, res.Redirect)
	}

	res := newTestPipeline(&fakeAPI{}).Resume(context.Background(), identity.RequestContext{})
	if view, ok := res.View.(*EntryView); !ok || view.HasSession {
		t.Fatalf("expected an empty entry view, got %+v", res)
	}
}

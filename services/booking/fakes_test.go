package booking

import (
	"context"
	"sync"
	"time"

	"bookingportal/models"
	"bookingportal/services/identity"
)

// fakeAPI backs both the selection pipeline and the identity resolver.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	session    *models.AppointmentSession
	sessionErr error
	auth       *models.AuthSnapshot
	pending    *models.PendingUser
	reqs       *models.StepResponse

	profiles    []models.Profile
	groups      []models.ServiceGroup
	groupsErr   error
	slots       []models.TimeSlot
	appointment *models.Appointment

	selectedProfile  int
	selectedServices []int
	startTime        string
	scheduleFrom     time.Time
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeAPI) GetSession(_ context.Context, _, _ string) (*models.AppointmentSession, error) {
	f.record("GetSession")
	return f.session, f.sessionErr
}

func (f *fakeAPI) GetAppointmentSessionProfiles(_ context.Context, _, _ string) ([]models.Profile, error) {
	f.record("GetAppointmentSessionProfiles")
	return f.profiles, nil
}

func (f *fakeAPI) SelectAppointmentSessionProfile(_ context.Context, _, _ string, profileID int) error {
	f.record("SelectAppointmentSessionProfile")
	f.selectedProfile = profileID
	return nil
}

func (f *fakeAPI) GetAppointmentSessionProfileServices(_ context.Context, _, _ string) ([]models.ServiceGroup, error) {
	f.record("GetAppointmentSessionProfileServices")
	return f.groups, f.groupsErr
}

func (f *fakeAPI) SelectAppointmentSessionProfileServices(_ context.Context, _, _ string, serviceIDs []int) error {
	f.record("SelectAppointmentSessionProfileServices")
	f.selectedServices = serviceIDs
	return nil
}

func (f *fakeAPI) GetAppointmentSessionSchedules(_ context.Context, _, _ string, from time.Time) ([]models.TimeSlot, error) {
	f.record("GetAppointmentSessionSchedules")
	f.scheduleFrom = from
	return f.slots, nil
}

func (f *fakeAPI) SubmitAppointmentSessionStartTime(_ context.Context, _, _ string, startTime string) error {
	f.record("SubmitAppointmentSessionStartTime")
	f.startTime = startTime
	return nil
}

func (f *fakeAPI) SubmitAppointmentSession(_ context.Context, _, _ string) (*models.Appointment, error) {
	f.record("SubmitAppointmentSession")
	return f.appointment, nil
}

func (f *fakeAPI) GetAuthSession(_ context.Context, _ string) (*models.AuthSnapshot, error) {
	f.record("GetAuthSession")
	return f.auth, nil
}

func (f *fakeAPI) GetPendingAppointmentSessionUser(_ context.Context, _, _ string) (*models.PendingUser, error) {
	f.record("GetPendingAppointmentSessionUser")
	return f.pending, nil
}

func (f *fakeAPI) SetPendingAppointmentSessionUser(_ context.Context, _, _ string, _ models.PendingUser) error {
	return nil
}

func (f *fakeAPI) ClearPendingAppointmentSessionUser(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeAPI) AttachAppointmentSessionUser(_ context.Context, _, _ string) (*models.StepResponse, error) {
	return &models.StepResponse{}, nil
}

func (f *fakeAPI) ClearAppointmentSessionUser(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeAPI) GetAppointmentSessionRequirements(_ context.Context, _, _ string) (*models.StepResponse, error) {
	f.record("GetAppointmentSessionRequirements")
	if f.reqs == nil {
		return &models.StepResponse{}, nil
	}
	return f.reqs, nil
}

func (f *fakeAPI) SignIn(_ context.Context, _ models.SignInRequest) (*models.AuthResult, error) {
	return nil, nil
}

func (f *fakeAPI) ProviderSignIn(_ context.Context, _ models.ProviderSignInRequest) (*models.AuthResult, error) {
	return nil, nil
}

func (f *fakeAPI) SignUp(_ context.Context, _ models.SignUpRequest) (*models.AuthResult, error) {
	return nil, nil
}

func (f *fakeAPI) ProviderCompleteProfile(_ context.Context, _ string, _ models.CompleteProfileRequest) (*models.StepResponse, error) {
	return nil, nil
}

func newTestPipeline(api *fakeAPI) *Pipeline {
	return NewPipeline(api, identity.NewResolver(api, nil), "/start", nil)
}

var testReq = identity.RequestContext{SessionID: "s-1", AccessToken: "tok"}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

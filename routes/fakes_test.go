package routes

import (
	"context"
	"sync"
	"time"

	"bookingportal/models"
	"bookingportal/services/remote"
)

var _ remote.BookingAPI = (*fakeAPI)(nil)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	session     *models.AppointmentSession
	auth        *models.AuthSnapshot
	pending     *models.PendingUser
	signIn      *models.AuthResult
	attachResp  *models.StepResponse
	status      *models.StepResponse
	verify      *models.StepResponse
	resend      *models.StepResponse
	appointment *models.Appointment
	verifyErr   error

	codes        []string
	statusTokens []string
	cancelled []models.CancelAppointmentClaims
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) GetSession(_ context.Context, _, _ string) (*models.AppointmentSession, error) {
	f.record("GetSession")
	if f.session == nil {
		return nil, &remote.APIError{Status: 404, Message: "not found"}
	}
	return f.session, nil
}

func (f *fakeAPI) GetAppointmentSessionProfiles(_ context.Context, _, _ string) ([]models.Profile, error) {
	return []models.Profile{{ID: 4, Name: "Kari"}}, nil
}

func (f *fakeAPI) SelectAppointmentSessionProfile(_ context.Context, _, _ string, _ int) error {
	f.record("SelectAppointmentSessionProfile")
	return nil
}

func (f *fakeAPI) GetAppointmentSessionProfileServices(_ context.Context, _, _ string) ([]models.ServiceGroup, error) {
	return nil, nil
}

func (f *fakeAPI) SelectAppointmentSessionProfileServices(_ context.Context, _, _ string, _ []int) error {
	f.record("SelectAppointmentSessionProfileServices")
	return nil
}

func (f *fakeAPI) GetAppointmentSessionSchedules(_ context.Context, _, _ string, _ time.Time) ([]models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeAPI) SubmitAppointmentSessionStartTime(_ context.Context, _, _, _ string) error {
	f.record("SubmitAppointmentSessionStartTime")
	return nil
}

func (f *fakeAPI) SubmitAppointmentSession(_ context.Context, _, _ string) (*models.Appointment, error) {
	f.record("SubmitAppointmentSession")
	return f.appointment, nil
}

func (f *fakeAPI) GetAuthSession(_ context.Context, accessToken string) (*models.AuthSnapshot, error) {
	f.record("GetAuthSession")
	if accessToken == "" {
		return nil, nil
	}
	return f.auth, nil
}

func (f *fakeAPI) GetPendingAppointmentSessionUser(_ context.Context, _, _ string) (*models.PendingUser, error) {
	f.record("GetPendingAppointmentSessionUser")
	return f.pending, nil
}

func (f *fakeAPI) SetPendingAppointmentSessionUser(_ context.Context, _, _ string, user models.PendingUser) error {
	f.record("SetPendingAppointmentSessionUser")
	f.mu.Lock()
	f.pending = &user
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) ClearPendingAppointmentSessionUser(_ context.Context, _, _ string) error {
	f.record("ClearPendingAppointmentSessionUser")
	f.mu.Lock()
	f.pending = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) AttachAppointmentSessionUser(_ context.Context, _, _ string) (*models.StepResponse, error) {
	f.record("AttachAppointmentSessionUser")
	if f.attachResp == nil {
		return &models.StepResponse{}, nil
	}
	return f.attachResp, nil
}

func (f *fakeAPI) ClearAppointmentSessionUser(_ context.Context, _, _ string) error {
	f.record("ClearAppointmentSessionUser")
	return nil
}

func (f *fakeAPI) GetAppointmentSessionRequirements(_ context.Context, _, _ string) (*models.StepResponse, error) {
	f.record("GetAppointmentSessionRequirements")
	return &models.StepResponse{}, nil
}

func (f *fakeAPI) SignIn(_ context.Context, _ models.SignInRequest) (*models.AuthResult, error) {
	f.record("SignIn")
	if f.signIn == nil {
		return nil, &remote.APIError{Status: 401, Message: "Wrong email or password"}
	}
	return f.signIn, nil
}

func (f *fakeAPI) ProviderSignIn(_ context.Context, _ models.ProviderSignInRequest) (*models.AuthResult, error) {
	f.record("ProviderSignIn")
	return f.signIn, nil
}

func (f *fakeAPI) SignUp(_ context.Context, _ models.SignUpRequest) (*models.AuthResult, error) {
	f.record("SignUp")
	return f.signIn, nil
}

func (f *fakeAPI) ProviderCompleteProfile(_ context.Context, _ string, _ models.CompleteProfileRequest) (*models.StepResponse, error) {
	f.record("ProviderCompleteProfile")
	return &models.StepResponse{}, nil
}

func (f *fakeAPI) ResendVerification(_ context.Context, _, _ string) (*models.StepResponse, error) {
	f.record("ResendVerification")
	return f.resend, nil
}

func (f *fakeAPI) VerificationStatus(_ context.Context, token string) (*models.StepResponse, error) {
	f.record("VerificationStatus")
	f.mu.Lock()
	f.statusTokens = append(f.statusTokens, token)
	f.mu.Unlock()
	return f.status, nil
}

func (f *fakeAPI) VerifyMobileCode(_ context.Context, _, _, code string) (*models.StepResponse, error) {
	f.record("VerifyMobileCode")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
	// verifyErr fails a single call.
	if err := f.verifyErr; err != nil {
		f.verifyErr = nil
		return nil, err
	}
	return f.verify, nil
}

func (f *fakeAPI) GetAppointmentByID(_ context.Context, _ int) (*models.Appointment, error) {
	f.record("GetAppointmentByID")
	if f.appointment == nil {
		return nil, &remote.APIError{Status: 404, Message: "not found"}
	}
	return f.appointment, nil
}

func (f *fakeAPI) CancelAppointment(_ context.Context, claims models.CancelAppointmentClaims) error {
	f.record("CancelAppointment")
	f.cancelled = append(f.cancelled, claims)
	return nil
}

func (f *fakeAPI) Health(_ context.Context) error { return nil }

func intPtr(v int) *int { return &v }

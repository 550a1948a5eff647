package identity

import (
	"context"
	"sync"

	"bookingportal/models"
)

type fakeIdentityAPI struct {
	mu    sync.Mutex
	calls []string

	session    *models.AppointmentSession
	sessionErr error
	auth       *models.AuthSnapshot
	authErr    error
	pending    *models.PendingUser
	pendingErr error
	reqs       *models.StepResponse
	reqsErr    error

	signIn     *models.AuthResult
	signInErr  error
	signUp     *models.AuthResult
	provider   *models.AuthResult
	attachResp *models.StepResponse
	attachErr  error
	setErr     error
	complete   *models.StepResponse

	setPending []models.PendingUser
}

func (f *fakeIdentityAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeIdentityAPI) GetSession(_ context.Context, _, _ string) (*models.AppointmentSession, error) {
	f.record("GetSession")
	return f.session, f.sessionErr
}

func (f *fakeIdentityAPI) GetAuthSession(_ context.Context, _ string) (*models.AuthSnapshot, error) {
	f.record("GetAuthSession")
	return f.auth, f.authErr
}

func (f *fakeIdentityAPI) GetPendingAppointmentSessionUser(_ context.Context, _, _ string) (*models.PendingUser, error) {
	f.record("GetPendingAppointmentSessionUser")
	return f.pending, f.pendingErr
}

func (f *fakeIdentityAPI) SetPendingAppointmentSessionUser(_ context.Context, _, _ string, user models.PendingUser) error {
	f.record("SetPendingAppointmentSessionUser")
	f.mu.Lock()
	f.setPending = append(f.setPending, user)
	f.mu.Unlock()
	return f.setErr
}

func (f *fakeIdentityAPI) ClearPendingAppointmentSessionUser(_ context.Context, _, _ string) error {
	f.record("ClearPendingAppointmentSessionUser")
	return nil
}

func (f *fakeIdentityAPI) AttachAppointmentSessionUser(_ context.Context, _, _ string) (*models.StepResponse, error) {
	f.record("AttachAppointmentSessionUser")
	if f.attachResp == nil && f.attachErr == nil {
		return &models.StepResponse{}, nil
	}
	return f.attachResp, f.attachErr
}

func (f *fakeIdentityAPI) ClearAppointmentSessionUser(_ context.Context, _, _ string) error {
	f.record("ClearAppointmentSessionUser")
	return nil
}

func (f *fakeIdentityAPI) GetAppointmentSessionRequirements(_ context.Context, _, _ string) (*models.StepResponse, error) {
	f.record("GetAppointmentSessionRequirements")
	if f.reqs == nil && f.reqsErr == nil {
		return &models.StepResponse{}, nil
	}
	return f.reqs, f.reqsErr
}

func (f *fakeIdentityAPI) SignIn(_ context.Context, _ models.SignInRequest) (*models.AuthResult, error) {
	f.record("SignIn")
	return f.signIn, f.signInErr
}

func (f *fakeIdentityAPI) ProviderSignIn(_ context.Context, _ models.ProviderSignInRequest) (*models.AuthResult, error) {
	f.record("ProviderSignIn")
	return f.provider, nil
}

func (f *fakeIdentityAPI) SignUp(_ context.Context, _ models.SignUpRequest) (*models.AuthResult, error) {
	f.record("SignUp")
	return f.signUp, nil
}

func (f *fakeIdentityAPI) ProviderCompleteProfile(_ context.Context, _ string, _ models.CompleteProfileRequest) (*models.StepResponse, error) {
	f.record("ProviderCompleteProfile")
	return f.complete, nil
}

type fakeVerificationAPI struct {
	resend *models.StepResponse
	verify *models.StepResponse
	codes  []string
}

func (f *fakeVerificationAPI) ResendVerification(_ context.Context, _, _ string) (*models.StepResponse, error) {
	return f.resend, nil
}

func (f *fakeVerificationAPI) VerificationStatus(_ context.Context, _ string) (*models.StepResponse, error) {
	return &models.StepResponse{}, nil
}

func (f *fakeVerificationAPI) VerifyMobileCode(_ context.Context, _, _, code string) (*models.StepResponse, error) {
	f.codes = append(f.codes, code)
	return f.verify, nil
}

func intPtr(v int) *int { return &v }

func authAs(id int) *models.AuthSnapshot {
	return &models.AuthSnapshot{AuthenticatedUserID: intPtr(id), AccessToken: "tok"}
}

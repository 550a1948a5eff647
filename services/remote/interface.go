package remote

import (
	"context"
	"time"

	"bookingportal/models"
)

// Every call takes the visitor's access token (possibly empty) and forwards it as a
// bearer token; nothing is cached between calls.

// SessionAPI reads the externally held booking session.
type SessionAPI interface {
	GetSession(ctx context.Context, accessToken, sessionID string) (*models.AppointmentSession, error)
}

// SelectionAPI advances a booking session through the selection pipeline.
type SelectionAPI interface {
	SessionAPI
	GetAppointmentSessionProfiles(ctx context.Context, accessToken, sessionID string) ([]models.Profile, error)
	SelectAppointmentSessionProfile(ctx context.Context, accessToken, sessionID string, profileID int) error
	GetAppointmentSessionProfileServices(ctx context.Context, accessToken, sessionID string) ([]models.ServiceGroup, error)
	SelectAppointmentSessionProfileServices(ctx context.Context, accessToken, sessionID string, serviceIDs []int) error
	GetAppointmentSessionSchedules(ctx context.Context, accessToken, sessionID string, from time.Time) ([]models.TimeSlot, error)
	SubmitAppointmentSessionStartTime(ctx context.Context, accessToken, sessionID, startTime string) error
	SubmitAppointmentSession(ctx context.Context, accessToken, sessionID string) (*models.Appointment, error)
}

// IdentityAPI binds identities to a booking session.
type IdentityAPI interface {
	SessionAPI
	GetAuthSession(ctx context.Context, accessToken string) (*models.AuthSnapshot, error)
	GetPendingAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) (*models.PendingUser, error)
	SetPendingAppointmentSessionUser(ctx context.Context, accessToken, sessionID string, user models.PendingUser) error
	ClearPendingAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) error
	AttachAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) (*models.StepResponse, error)
	ClearAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) error
	GetAppointmentSessionRequirements(ctx context.Context, accessToken, sessionID string) (*models.StepResponse, error)

	SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResult, error)
	ProviderSignIn(ctx context.Context, req models.ProviderSignInRequest) (*models.AuthResult, error)
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResult, error)
	ProviderCompleteProfile(ctx context.Context, accessToken string, req models.CompleteProfileRequest) (*models.StepResponse, error)
}

// VerificationAPI drives email/mobile verification sessions.
type VerificationAPI interface {
	ResendVerification(ctx context.Context, accessToken, verificationSessionToken string) (*models.StepResponse, error)
	VerificationStatus(ctx context.Context, verificationSessionToken string) (*models.StepResponse, error)
	VerifyMobileCode(ctx context.Context, accessToken, verificationSessionToken, code string) (*models.StepResponse, error)
}

// AppointmentAPI reads and cancels confirmed appointments.
type AppointmentAPI interface {
	GetAppointmentByID(ctx context.Context, appointmentID int) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, claims models.CancelAppointmentClaims) error
}

// BookingAPI is the full remote surface.
type BookingAPI interface {
	SelectionAPI
	IdentityAPI
	VerificationAPI
	AppointmentAPI
	Health(ctx context.Context) error
}

package identity

import (
	"context"
	"fmt"

	"bookingportal/models"
	"bookingportal/services/remote"

	"go.uber.org/zap"
)

// Outcome describes where an identity action left the booking session.
// Auth is set when new tokens must be written as cookies, even if a later step failed.
type Outcome struct {
	Auth                     *models.AuthResult
	State                    FlowState
	NextStep                 models.NextStep
	VerificationSessionToken string
	Attached                 bool
}

// Linker binds identities to booking sessions. No call is retried.
type Linker struct {
	API          remote.IdentityAPI
	Verification remote.VerificationAPI
	Resolver     *Resolver
	Logger       *zap.Logger
}

func NewLinker(api remote.IdentityAPI, verification remote.VerificationAPI, resolver *Resolver, logger *zap.Logger) *Linker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Linker{API: api, Verification: verification, Resolver: resolver, Logger: logger}
}

// SignIn authenticates with local credentials and links the result to the session.
func (l *Linker) SignIn(ctx context.Context, sessionID string, req models.SignInRequest) (*Outcome, error) {
	res, err := l.API.SignIn(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return l.CompleteAuthentication(ctx, sessionID, res)
}

// ProviderSignIn authenticates with a third-party credential.
func (l *Linker) ProviderSignIn(ctx context.Context, sessionID string, req models.ProviderSignInRequest) (*Outcome, error) {
	res, err := l.API.ProviderSignIn(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("provider sign in: %w", err)
	}
	return l.CompleteAuthentication(ctx, sessionID, res)
}

// SignUp registers a new account.
func (l *Linker) SignUp(ctx context.Context, sessionID string, req models.SignUpRequest) (*Outcome, error) {
	res, err := l.API.SignUp(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return l.CompleteAuthentication(ctx, sessionID, res)
}

// ContinueAsSessionUser confirms the password of the user the session already names.
// Signing in as anybody else is rejected without issuing cookies.
func (l *Linker) ContinueAsSessionUser(ctx context.Context, req RequestContext, creds models.SignInRequest) (*Outcome, error) {
	session, err := l.API.GetSession(ctx, req.AccessToken, req.SessionID)
	if err != nil {
		if remote.IsNotFound(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	res, err := l.API.SignIn(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if session.UserID != nil && *session.UserID != res.UserID {
		return nil, ErrMismatch
	}
	return l.CompleteAuthentication(ctx, req.SessionID, res)
}

// CompleteAuthentication handles a sign-in/sign-up/provider response: the tokens are
// returned for cookies, then the identity is either attached right away or parked as
// the pending user until collection/verification completes. A session bound to another
// user is left untouched and ErrMismatch is returned with the tokens.
func (l *Linker) CompleteAuthentication(ctx context.Context, sessionID string, res *models.AuthResult) (*Outcome, error) {
	if res == nil || res.UserID == 0 {
		return nil, ErrMissingUserRecord
	}
	out := &Outcome{Auth: res}
	if sessionID == "" {
		return out, ErrNoSession
	}
	next, err := l.advance(ctx, res.AccessToken, sessionID, res.UserID, res.NextStep, res.VerificationSessionToken)
	if err != nil {
		return out, err
	}
	next.Auth = res
	return next, nil
}

// Advance moves an authenticated identity to step, e.g. after a verification poll
// observed progress.
func (l *Linker) Advance(ctx context.Context, req RequestContext, step models.NextStep, verificationToken string) (*Outcome, error) {
	userID, err := l.authenticatedUser(ctx, req.AccessToken)
	if err != nil {
		return nil, err
	}
	return l.advance(ctx, req.AccessToken, req.SessionID, userID, step, verificationToken)
}

func (l *Linker) advance(ctx context.Context, accessToken, sessionID string, userID int, step models.NextStep, verificationToken string) (*Outcome, error) {
	if !step.Known() {
		l.Logger.Error("identity: unrecognized next step", zap.String("nextStep", string(step)), zap.Int("userId", userID))
		return nil, fmt.Errorf("%w: %q", ErrUnknownNextStep, string(step))
	}
	if err := l.ensureOwner(ctx, accessToken, sessionID, userID); err != nil {
		return nil, err
	}

	if step.NeedsAttach() {
		pending := models.PendingUser{UserID: userID, NextStep: models.NextStepAttachSession}
		if err := l.API.SetPendingAppointmentSessionUser(ctx, accessToken, sessionID, pending); err != nil {
			return nil, fmt.Errorf("persist pending user: %w", err)
		}
		return l.attach(ctx, accessToken, sessionID, userID)
	}

	pending := models.PendingUser{UserID: userID, NextStep: step}
	if err := l.API.SetPendingAppointmentSessionUser(ctx, accessToken, sessionID, pending); err != nil {
		return nil, fmt.Errorf("persist pending user: %w", err)
	}
	return &Outcome{
		State:                    stateForStep(step),
		NextStep:                 step,
		VerificationSessionToken: verificationToken,
	}, nil
}

// ensureOwner fails with ErrMismatch when the session already names a different user.
func (l *Linker) ensureOwner(ctx context.Context, accessToken, sessionID string, userID int) error {
	session, err := l.API.GetSession(ctx, accessToken, sessionID)
	if err != nil {
		if remote.IsNotFound(err) {
			return ErrNoSession
		}
		return fmt.Errorf("load session: %w", err)
	}
	if session != nil && session.UserID != nil && *session.UserID != userID {
		l.Logger.Warn("identity: session belongs to another user",
			zap.String("sessionId", sessionID), zap.Int("sessionUserId", *session.UserID), zap.Int("userId", userID))
		return ErrMismatch
	}
	return nil
}

// attach binds the identity to the session. A further next step in the response wins
// over assuming success.
func (l *Linker) attach(ctx context.Context, accessToken, sessionID string, userID int) (*Outcome, error) {
	resp, err := l.API.AttachAppointmentSessionUser(ctx, accessToken, sessionID)
	if err != nil {
		return nil, fmt.Errorf("attach session user: %w", err)
	}
	if resp != nil && !resp.NextStep.NeedsAttach() {
		if !resp.NextStep.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNextStep, string(resp.NextStep))
		}
		pending := models.PendingUser{UserID: userID, NextStep: resp.NextStep}
		if err := l.API.SetPendingAppointmentSessionUser(ctx, accessToken, sessionID, pending); err != nil {
			return nil, fmt.Errorf("persist pending user: %w", err)
		}
		return &Outcome{
			State:                    stateForStep(resp.NextStep),
			NextStep:                 resp.NextStep,
			VerificationSessionToken: resp.VerificationSessionToken,
		}, nil
	}
	if resp != nil && resp.NextStep == models.NextStepAttachSession {
		return nil, fmt.Errorf("%w: attach reported %s", ErrNotAttachable, resp.NextStep)
	}
	return &Outcome{State: FlowDone, NextStep: models.NextStepDone, Attached: true}, nil
}

// Attach re-resolves the flow and attaches only from ATTACHABLE without a mismatch.
func (l *Linker) Attach(ctx context.Context, req RequestContext) (*Outcome, error) {
	snap := l.Resolver.Load(ctx, req)
	switch {
	case snap.Result.State == FlowNoSession:
		return nil, ErrNoSession
	case snap.Result.Mismatch:
		return nil, ErrMismatch
	case !snap.Result.CanAttach():
		return nil, fmt.Errorf("%w: state %s", ErrNotAttachable, snap.Result.State)
	}
	userID, ok := snap.UserID()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return l.attach(ctx, req.AccessToken, req.SessionID, userID)
}

// CompleteProfile supplies the email or mobile number a provider sign-in lacked.
func (l *Linker) CompleteProfile(ctx context.Context, req RequestContext, profile models.CompleteProfileRequest) (*Outcome, error) {
	userID, err := l.authenticatedUser(ctx, req.AccessToken)
	if err != nil {
		return nil, err
	}
	resp, err := l.API.ProviderCompleteProfile(ctx, req.AccessToken, profile)
	if err != nil {
		return nil, fmt.Errorf("complete profile: %w", err)
	}
	return l.advance(ctx, req.AccessToken, req.SessionID, userID, resp.NextStep, resp.VerificationSessionToken)
}

// VerifyMobile submits a six digit code for the verification session.
func (l *Linker) VerifyMobile(ctx context.Context, req RequestContext, verificationToken, code string) (*Outcome, error) {
	userID, err := l.authenticatedUser(ctx, req.AccessToken)
	if err != nil {
		return nil, err
	}
	resp, err := l.Verification.VerifyMobileCode(ctx, req.AccessToken, verificationToken, code)
	if err != nil {
		return nil, fmt.Errorf("verify mobile code: %w", err)
	}
	token := resp.VerificationSessionToken
	if token == "" {
		token = verificationToken
	}
	return l.advance(ctx, req.AccessToken, req.SessionID, userID, resp.NextStep, token)
}

// ResendVerification asks for a fresh verification session and returns its token.
func (l *Linker) ResendVerification(ctx context.Context, req RequestContext, verificationToken string) (string, error) {
	resp, err := l.Verification.ResendVerification(ctx, req.AccessToken, verificationToken)
	if err != nil {
		return "", fmt.Errorf("resend verification: %w", err)
	}
	if resp.VerificationSessionToken == "" {
		return verificationToken, nil
	}
	return resp.VerificationSessionToken, nil
}

// ClearPendingUser drops the pending identity; the flow falls back to sign-in.
func (l *Linker) ClearPendingUser(ctx context.Context, req RequestContext) error {
	if err := l.API.ClearPendingAppointmentSessionUser(ctx, req.AccessToken, req.SessionID); err != nil {
		return fmt.Errorf("clear pending user: %w", err)
	}
	return nil
}

// ClearSessionUser unbinds the session's user ("use a different account").
func (l *Linker) ClearSessionUser(ctx context.Context, req RequestContext) error {
	if err := l.API.ClearAppointmentSessionUser(ctx, req.AccessToken, req.SessionID); err != nil {
		return fmt.Errorf("clear session user: %w", err)
	}
	return nil
}

func (l *Linker) authenticatedUser(ctx context.Context, accessToken string) (int, error) {
	auth, err := l.API.GetAuthSession(ctx, accessToken)
	if err != nil {
		l.Logger.Warn("identity: auth session lookup failed", zap.Error(err))
		return 0, ErrNotAuthenticated
	}
	if !auth.Authenticated() {
		return 0, ErrNotAuthenticated
	}
	return *auth.AuthenticatedUserID, nil
}

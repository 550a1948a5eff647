package identity

import (
	"context"
	"fmt"

	"bookingportal/models"
	"bookingportal/services/remote"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RequestContext carries what a request knows about the visitor: the booking session
// id from its cookie and the access token from the auth cookie.
type RequestContext struct {
	SessionID   string
	AccessToken string
}

// Snapshot is one request's view of the session, auth and pending identity, with the
// flow state derived from them.
type Snapshot struct {
	Session *models.AppointmentSession
	Auth    *models.AuthSnapshot
	User    *models.PendingUser
	Result  FlowResult
}

// UserID returns the identity the flow would attach, if any. The authenticated user
// wins over a pending record left behind by somebody else.
func (s *Snapshot) UserID() (int, bool) {
	if s.Auth.Authenticated() {
		return *s.Auth.AuthenticatedUserID, true
	}
	if s.User != nil && s.User.UserID != 0 {
		return s.User.UserID, true
	}
	return 0, false
}

// Resolver loads the inputs of ResolveFlow for a request. Nothing is cached.
type Resolver struct {
	API    remote.IdentityAPI
	Logger *zap.Logger
}

func NewResolver(api remote.IdentityAPI, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{API: api, Logger: logger}
}

// Load never returns an error: failures are folded into the flow state.
// A session that cannot be loaded forces NO_SESSION; auth and pending-user lookup
// failures are treated as absent.
func (r *Resolver) Load(ctx context.Context, req RequestContext) *Snapshot {
	snap := &Snapshot{}
	if req.SessionID == "" {
		snap.Result = ResolveFlow(FlowInput{})
		return snap
	}

	session, err := r.API.GetSession(ctx, req.AccessToken, req.SessionID)
	if err != nil {
		if !remote.IsNotFound(err) {
			r.Logger.Warn("identity: session lookup failed", zap.String("sessionId", req.SessionID), zap.Error(err))
		}
		snap.Result = ResolveFlow(FlowInput{})
		return snap
	}
	snap.Session = session

	var g errgroup.Group
	g.Go(func() error {
		auth, err := r.API.GetAuthSession(ctx, req.AccessToken)
		if err != nil {
			r.Logger.Warn("identity: auth session lookup failed, treating as unauthenticated", zap.Error(err))
			return nil
		}
		snap.Auth = auth
		return nil
	})
	g.Go(func() error {
		// TODO: distinguish a failed lookup from "no pending user" once the screens can show it.
		user, err := r.API.GetPendingAppointmentSessionUser(ctx, req.AccessToken, req.SessionID)
		if err != nil {
			r.Logger.Warn("identity: pending user lookup failed, treating as absent", zap.Error(err))
			return nil
		}
		snap.User = user
		return nil
	})
	_ = g.Wait()

	var loadErr error
	if snap.User == nil && snap.Auth.Authenticated() && !Mismatch(session, snap.Auth) {
		reqs, err := r.API.GetAppointmentSessionRequirements(ctx, req.AccessToken, req.SessionID)
		if err != nil {
			loadErr = fmt.Errorf("load session requirements: %w", err)
		} else {
			snap.User = &models.PendingUser{UserID: *snap.Auth.AuthenticatedUserID, NextStep: reqs.NextStep}
		}
	}

	snap.Result = ResolveFlow(FlowInput{
		Session: session,
		Auth:    snap.Auth,
		User:    snap.User,
		Err:     loadErr,
	})
	if snap.Result.State == FlowError {
		r.Logger.Warn("identity: flow resolved to error",
			zap.String("sessionId", req.SessionID),
			zap.String("diagnostic", snap.Result.Diagnostic))
	}
	return snap
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookingportal/middleware"
	"bookingportal/models"
	"bookingportal/services/booking"
	"bookingportal/services/clientstate"
	"bookingportal/services/identity"
	"bookingportal/services/remote"
	"bookingportal/services/verification"
	"bookingportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerificationHandler streams verification progress while the identify screen is open.
type VerificationHandler struct {
	Resolver *identity.Resolver
	Linker   *identity.Linker
	API      remote.VerificationAPI
	Store    clientstate.Store
	Interval time.Duration
}

func NewVerificationHandler(resolver *identity.Resolver, linker *identity.Linker, api remote.VerificationAPI, store clientstate.Store, interval time.Duration) *VerificationHandler {
	return &VerificationHandler{Resolver: resolver, Linker: linker, API: api, Store: store, Interval: interval}
}

func (h *VerificationHandler) send(c *gin.Context, event string, data any) {
	c.SSEvent(event, data)
	c.Writer.Flush()
}

// EventsHandler polls the verification session for as long as the connection stays
// open. Events: "state" (nothing to poll), "polling", "advance", "cleared", "error".
func (h *VerificationHandler) EventsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	req := middleware.RequestContext(c)
	logger := getLogger(c)

	snap := h.Resolver.Load(ctx, req)
	if snap.Result.State == identity.FlowNoSession {
		utils.JSONError(c, http.StatusGone, localize(c, utils.MsgSessionExpired), "")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	if snap.Result.State != identity.FlowVerifyEmail && snap.Result.State != identity.FlowVerifyMobile {
		h.send(c, "state", gin.H{"state": snap.Result.State})
		return
	}

	if fallback := c.Query("verificationSessionToken"); fallback != "" {
		if current, _ := h.Store.VerificationToken(ctx, req.SessionID); current == "" {
			if err := h.Store.SetVerificationToken(ctx, req.SessionID, fallback); err != nil {
				logger.Warn("verification: store token failed", zap.Error(err))
			}
		}
	}

	poller := &verification.Poller{
		Interval: h.Interval,
		Current:  snap.Result.NextStep,
		Token: func(ctx context.Context) string {
			token, err := h.Store.VerificationToken(ctx, req.SessionID)
			if err != nil {
				logger.Warn("verification: read token failed", zap.Error(err))
			}
			return token
		},
		Check: func(ctx context.Context, token string) (models.NextStep, error) {
			resp, err := h.API.VerificationStatus(ctx, token)
			if err != nil {
				return "", err
			}
			return resp.NextStep, nil
		},
		Logger: logger,
	}

	h.send(c, "polling", gin.H{"nextStep": poller.Current})
	step, err := poller.Run(ctx)
	switch {
	case errors.Is(err, verification.ErrTokenCleared):
		h.send(c, "cleared", gin.H{"error": localize(c, utils.MsgMissingVerification)})
		return
	case err != nil:
		// client went away
		return
	}

	token, _ := h.Store.VerificationToken(ctx, req.SessionID)
	out, err := h.Linker.Advance(ctx, req, step, token)
	if err != nil {
		logger.Warn("verification: advance failed", zap.String("nextStep", string(step)), zap.Error(err))
		h.send(c, "error", gin.H{"error": remote.UserMessage(err, localize(c, utils.MsgGenericFailure))})
		return
	}
	if out.VerificationSessionToken != "" && out.VerificationSessionToken != token {
		if err := h.Store.SetVerificationToken(ctx, req.SessionID, out.VerificationSessionToken); err != nil {
			logger.Warn("verification: store token failed", zap.Error(err))
		}
	}

	redirect := booking.RouteIdentify
	if out.Attached {
		redirect = booking.RouteServices
	}
	h.send(c, "advance", gin.H{
		"state":    out.State,
		"nextStep": out.NextStep,
		"attached": out.Attached,
		"redirect": redirect,
	})
}

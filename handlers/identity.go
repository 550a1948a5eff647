package handlers

import (
	"context"
	"net/http"

	"bookingportal/middleware"
	"bookingportal/models"
	"bookingportal/services/booking"
	"bookingportal/services/clientstate"
	"bookingportal/services/identity"
	"bookingportal/services/verification"
	"bookingportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	draftSignIn = "sign-in"
	draftSignUp = "sign-up"
)

// draftFields are the inputs worth restoring per form. Passwords never are.
var draftFields = map[string][]string{
	draftSignIn: {"email"},
	draftSignUp: {"firstName", "lastName", "email", "mobileNumber"},
}

// IdentityHandler serves the identify step and the account-linking actions.
type IdentityHandler struct {
	Resolver  *identity.Resolver
	Linker    *identity.Linker
	Store     clientstate.Store
	Cookies   Cookies
	EntryPath string
}

func NewIdentityHandler(resolver *identity.Resolver, linker *identity.Linker, store clientstate.Store, cookies Cookies, entryPath string) *IdentityHandler {
	return &IdentityHandler{Resolver: resolver, Linker: linker, Store: store, Cookies: cookies, EntryPath: entryPath}
}

// IdentifyView is what the identify screen renders from.
type IdentifyView struct {
	State                    identity.FlowState           `json:"state"`
	Mismatch                 bool                         `json:"mismatch"`
	CanAttach                bool                         `json:"canAttach"`
	NextStep                 models.NextStep              `json:"nextStep,omitempty"`
	Diagnostic               string                       `json:"diagnostic,omitempty"`
	SessionUserID            *int                         `json:"sessionUserId,omitempty"`
	VerificationSessionToken string                       `json:"verificationSessionToken,omitempty"`
	Drafts                   map[string]map[string]string `json:"drafts,omitempty"`
}

func (h *IdentityHandler) IdentifyLoader(c *gin.Context) {
	ctx := c.Request.Context()
	req := middleware.RequestContext(c)
	snap := h.Resolver.Load(ctx, req)

	switch snap.Result.State {
	case identity.FlowNoSession:
		c.Redirect(http.StatusFound, h.EntryPath)
		return
	case identity.FlowDone:
		c.Redirect(http.StatusFound, booking.FirstIncompleteRoute(snap.Session))
		return
	}

	view := &IdentifyView{
		State:         snap.Result.State,
		Mismatch:      snap.Result.Mismatch,
		CanAttach:     snap.Result.CanAttach(),
		NextStep:      snap.Result.NextStep,
		Diagnostic:    snap.Result.Diagnostic,
		SessionUserID: snap.Session.UserID,
	}

	switch snap.Result.State {
	case identity.FlowVerifyEmail, identity.FlowVerifyMobile:
		view.VerificationSessionToken = h.verificationToken(c, req.SessionID, c.Query("verificationSessionToken"))
	case identity.FlowSessionNoUserNoAuth:
		view.Drafts = h.drafts(ctx, c)
	}
	c.JSON(http.StatusOK, view)
}

// verificationToken prefers the stored token and falls back to fallback, which is
// then stored.
func (h *IdentityHandler) verificationToken(c *gin.Context, sessionID, fallback string) string {
	ctx := c.Request.Context()
	token, err := h.Store.VerificationToken(ctx, sessionID)
	if err != nil {
		getLogger(c).Warn("identity: read verification token failed", zap.Error(err))
	}
	if token != "" || fallback == "" {
		return token
	}
	h.rememberToken(c, sessionID, fallback)
	return fallback
}

func (h *IdentityHandler) rememberToken(c *gin.Context, sessionID, token string) {
	if token == "" {
		return
	}
	if err := h.Store.SetVerificationToken(c.Request.Context(), sessionID, token); err != nil {
		getLogger(c).Warn("identity: store verification token failed", zap.Error(err))
	}
}

func (h *IdentityHandler) drafts(ctx context.Context, c *gin.Context) map[string]map[string]string {
	visitorID := middleware.VisitorID(c)
	out := map[string]map[string]string{}
	for form := range draftFields {
		values, err := h.Store.Draft(ctx, visitorID, form)
		if err != nil {
			getLogger(c).Warn("identity: read draft failed", zap.String("form", form), zap.Error(err))
			continue
		}
		if len(values) > 0 {
			out[form] = values
		}
	}
	return out
}

// SaveDraftHandler keeps the non-secret inputs of a sign-in/sign-up form.
func (h *IdentityHandler) SaveDraftHandler(c *gin.Context) {
	form := c.Param("form")
	fields, ok := draftFields[form]
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "unknown form", form)
		return
	}
	values := map[string]string{}
	for _, field := range fields {
		if v := c.PostForm(field); v != "" {
			values[field] = v
		}
	}
	if err := h.Store.SaveDraft(c.Request.Context(), middleware.VisitorID(c), form, values); err != nil {
		getLogger(c).Warn("identity: save draft failed", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

// finish writes cookies for any new tokens, then answers with the error or the
// redirect the outcome calls for. A successful attach continues to service selection.
func (h *IdentityHandler) finish(c *gin.Context, out *identity.Outcome, err error, draft string) {
	req := middleware.RequestContext(c)
	if out != nil {
		h.Cookies.SetAuth(c, out.Auth)
		if out.Auth != nil {
			h.rememberToken(c, req.SessionID, out.Auth.VerificationSessionToken)
		}
		h.rememberToken(c, req.SessionID, out.VerificationSessionToken)
	}
	if err != nil {
		actionError(c, err)
		return
	}
	if draft != "" {
		if err := h.Store.ClearDraft(c.Request.Context(), middleware.VisitorID(c), draft); err != nil {
			getLogger(c).Warn("identity: clear draft failed", zap.Error(err))
		}
	}
	if out.Attached {
		getLogger(c).Info("identity: session attached")
		seeOther(c, booking.RouteServices)
		return
	}
	seeOther(c, booking.RouteIdentify)
}

func (h *IdentityHandler) SignInHandler(c *gin.Context) {
	var input models.SignInRequest
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.Linker.SignIn(c.Request.Context(), middleware.RequestContext(c).SessionID, input)
	h.finish(c, out, err, draftSignIn)
}

func (h *IdentityHandler) ProviderSignInHandler(c *gin.Context) {
	input := models.ProviderSignInRequest{Provider: c.Param("provider")}
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.Linker.ProviderSignIn(c.Request.Context(), middleware.RequestContext(c).SessionID, input)
	h.finish(c, out, err, draftSignIn)
}

func (h *IdentityHandler) SignUpHandler(c *gin.Context) {
	var input models.SignUpRequest
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.Linker.SignUp(c.Request.Context(), middleware.RequestContext(c).SessionID, input)
	h.finish(c, out, err, draftSignUp)
}

// ContinueHandler re-authenticates as the user the session already names.
func (h *IdentityHandler) ContinueHandler(c *gin.Context) {
	var input models.SignInRequest
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	out, err := h.Linker.ContinueAsSessionUser(c.Request.Context(), middleware.RequestContext(c), input)
	h.finish(c, out, err, "")
}

func (h *IdentityHandler) AttachHandler(c *gin.Context) {
	out, err := h.Linker.Attach(c.Request.Context(), middleware.RequestContext(c))
	h.finish(c, out, err, "")
}

func (h *IdentityHandler) CompleteProfileHandler(c *gin.Context) {
	var input models.CompleteProfileRequest
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	if input.Email == "" && input.MobileNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "email or mobileNumber is required")
		return
	}
	out, err := h.Linker.CompleteProfile(c.Request.Context(), middleware.RequestContext(c), input)
	h.finish(c, out, err, "")
}

// VerifyMobileHandler accepts either a whole `code` or the six `digits` fields. A code
// is only sent once per verification session; repeats are acknowledged without a call.
func (h *IdentityHandler) VerifyMobileHandler(c *gin.Context) {
	ctx := c.Request.Context()
	req := middleware.RequestContext(c)

	code := c.PostForm("code")
	if code == "" {
		input := verification.NewCodeInput("")
		for i, digit := range c.PostFormArray("digits") {
			input.Input(i, digit)
		}
		code = input.Value()
	}
	if !verification.IsCompleteCode(code) {
		utils.JSONError(c, http.StatusBadRequest, localize(c, utils.MsgIncompleteCode), "")
		return
	}

	token := h.verificationToken(c, req.SessionID, c.PostForm("verificationSessionToken"))
	if token == "" {
		actionError(c, verification.ErrTokenCleared)
		return
	}

	last, err := h.Store.LastSubmittedCode(ctx, req.SessionID)
	if err != nil {
		getLogger(c).Warn("identity: read submitted code failed", zap.Error(err))
	}
	guard := verification.NewAutoSubmitter(last)
	if !guard.ShouldSubmit(code, token) {
		seeOther(c, booking.RouteIdentify)
		return
	}
	if err := h.Store.SetLastSubmittedCode(ctx, req.SessionID, guard.Last()); err != nil {
		getLogger(c).Warn("identity: store submitted code failed", zap.Error(err))
	}

	out, err := h.Linker.VerifyMobile(ctx, req, token, code)
	if err != nil {
		// The code never counted, so the same digits may be sent again.
		if err := h.Store.SetLastSubmittedCode(ctx, req.SessionID, ""); err != nil {
			getLogger(c).Warn("identity: reset submitted code failed", zap.Error(err))
		}
	}
	h.finish(c, out, err, "")
}

func (h *IdentityHandler) ResendVerificationHandler(c *gin.Context) {
	req := middleware.RequestContext(c)
	current := h.verificationToken(c, req.SessionID, c.PostForm("verificationSessionToken"))
	if current == "" {
		actionError(c, verification.ErrTokenCleared)
		return
	}
	token, err := h.Linker.ResendVerification(c.Request.Context(), req, current)
	if err != nil {
		actionError(c, err)
		return
	}
	if token != current {
		h.rememberToken(c, req.SessionID, token)
	}
	seeOther(c, booking.RouteIdentify)
}

// ClearPendingHandler abandons the pending identity and its verification session, and
// signs the visitor out so the flow starts over at sign-in.
func (h *IdentityHandler) ClearPendingHandler(c *gin.Context) {
	req := middleware.RequestContext(c)
	if err := h.Linker.ClearPendingUser(c.Request.Context(), req); err != nil {
		actionError(c, err)
		return
	}
	if err := h.Store.ClearVerificationToken(c.Request.Context(), req.SessionID); err != nil {
		getLogger(c).Warn("identity: clear verification token failed", zap.Error(err))
	}
	h.Cookies.ClearAuth(c)
	seeOther(c, booking.RouteIdentify)
}

// ClearSessionUserHandler unbinds the session's user so another account can be used.
func (h *IdentityHandler) ClearSessionUserHandler(c *gin.Context) {
	if err := h.Linker.ClearSessionUser(c.Request.Context(), middleware.RequestContext(c)); err != nil {
		actionError(c, err)
		return
	}
	seeOther(c, booking.RouteIdentify)
}

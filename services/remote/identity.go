package remote

import (
	"context"
	"net/http"
	"net/url"

	"bookingportal/models"
)

// GetAuthSession resolves the user behind an access token. An empty token is
// answered locally as "not authenticated".
func (c *Client) GetAuthSession(ctx context.Context, accessToken string) (*models.AuthSnapshot, error) {
	if accessToken == "" {
		return nil, nil
	}
	var body struct {
		UserID *int `json:"userId"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/session", accessToken, nil, &body); err != nil {
		return nil, err
	}
	return &models.AuthSnapshot{AuthenticatedUserID: body.UserID, AccessToken: accessToken}, nil
}

func (c *Client) GetPendingAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) (*models.PendingUser, error) {
	var user models.PendingUser
	if err := c.do(ctx, http.MethodGet, sessionPath(sessionID, "pending-user"), accessToken, nil, &user); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if user.UserID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (c *Client) SetPendingAppointmentSessionUser(ctx context.Context, accessToken, sessionID string, user models.PendingUser) error {
	return c.do(ctx, http.MethodPut, sessionPath(sessionID, "pending-user"), accessToken, user, nil)
}

func (c *Client) ClearPendingAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) error {
	return c.do(ctx, http.MethodDelete, sessionPath(sessionID, "pending-user"), accessToken, nil, nil)
}

func (c *Client) AttachAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) (*models.StepResponse, error) {
	var resp models.StepResponse
	if err := c.do(ctx, http.MethodPost, sessionPath(sessionID, "user"), accessToken, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ClearAppointmentSessionUser(ctx context.Context, accessToken, sessionID string) error {
	return c.do(ctx, http.MethodDelete, sessionPath(sessionID, "user"), accessToken, nil, nil)
}

func (c *Client) GetAppointmentSessionRequirements(ctx context.Context, accessToken, sessionID string) (*models.StepResponse, error) {
	var resp models.StepResponse
	if err := c.do(ctx, http.MethodGet, sessionPath(sessionID, "requirements"), accessToken, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResult, error) {
	return c.authenticate(ctx, "/auth/sign-in", req)
}

func (c *Client) ProviderSignIn(ctx context.Context, req models.ProviderSignInRequest) (*models.AuthResult, error) {
	return c.authenticate(ctx, "/auth/provider/"+url.PathEscape(req.Provider)+"/sign-in", req)
}

func (c *Client) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResult, error) {
	return c.authenticate(ctx, "/auth/sign-up", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := c.do(ctx, http.MethodPost, path, "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ProviderCompleteProfile(ctx context.Context, accessToken string, req models.CompleteProfileRequest) (*models.StepResponse, error) {
	var resp models.StepResponse
	if err := c.do(ctx, http.MethodPost, "/auth/provider/complete-profile", accessToken, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ResendVerification(ctx context.Context, accessToken, verificationSessionToken string) (*models.StepResponse, error) {
	var resp models.StepResponse
	body := map[string]string{"verificationSessionToken": verificationSessionToken}
	if err := c.do(ctx, http.MethodPost, "/auth/verification/resend", accessToken, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerificationStatus(ctx context.Context, verificationSessionToken string) (*models.StepResponse, error) {
	var resp models.StepResponse
	path := "/auth/verification/status?verificationSessionToken=" + url.QueryEscape(verificationSessionToken)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) VerifyMobileCode(ctx context.Context, accessToken, verificationSessionToken, code string) (*models.StepResponse, error) {
	var resp models.StepResponse
	body := map[string]string{"code": code, "verificationSessionToken": verificationSessionToken}
	if err := c.do(ctx, http.MethodPost, "/auth/verification/mobile", accessToken, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

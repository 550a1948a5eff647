package models

// NextStep is what the identity flow must do next for a user, as reported by the API.
type NextStep string

const (
	NextStepNone          NextStep = ""
	NextStepCollectEmail  NextStep = "COLLECT_EMAIL"
	NextStepCollectMobile NextStep = "COLLECT_MOBILE"
	NextStepVerifyEmail   NextStep = "VERIFY_EMAIL"
	NextStepVerifyMobile  NextStep = "VERIFY_MOBILE"
	NextStepAttachSession NextStep = "ATTACH_SESSION"
	NextStepDone          NextStep = "DONE"
)

// Known reports whether s is one of the enumerated values (the empty value included).
func (s NextStep) Known() bool {
	switch s {
	case NextStepNone, NextStepCollectEmail, NextStepCollectMobile,
		NextStepVerifyEmail, NextStepVerifyMobile, NextStepAttachSession, NextStepDone:
		return true
	}
	return false
}

// NeedsAttach reports whether the step means the identity is ready to be attached.
func (s NextStep) NeedsAttach() bool {
	return s == NextStepNone || s == NextStepAttachSession || s == NextStepDone
}

// AuthSnapshot is derived from the request's auth cookies.
type AuthSnapshot struct {
	AuthenticatedUserID *int   `json:"authenticatedUserId,omitempty"`
	AccessToken         string `json:"-"`
}

// Authenticated reports whether the snapshot names a user.
func (a *AuthSnapshot) Authenticated() bool {
	return a != nil && a.AuthenticatedUserID != nil
}

// PendingUser is an identity known to the session but not yet attached to it.
type PendingUser struct {
	UserID   int      `json:"userId"`
	NextStep NextStep `json:"nextStep"`
}

// AuthResult is returned by sign-in, sign-up and provider sign-in.
type AuthResult struct {
	AccessToken              string   `json:"accessToken"`
	AccessTokenExpiresAt     int64    `json:"accessTokenExpiresAt"`
	RefreshToken             string   `json:"refreshToken"`
	RefreshTokenExpiresAt    int64    `json:"refreshTokenExpiresAt"`
	UserID                   int      `json:"userId"`
	NextStep                 NextStep `json:"nextStep,omitempty"`
	VerificationSessionToken string   `json:"verificationSessionToken,omitempty"`
}

// StepResponse is the shape of attach, requirements, verification and
// complete-profile responses.
type StepResponse struct {
	NextStep                 NextStep `json:"nextStep,omitempty"`
	VerificationSessionToken string   `json:"verificationSessionToken,omitempty"`
}

// SignInRequest carries local credentials.
type SignInRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// ProviderSignInRequest carries a third-party credential.
type ProviderSignInRequest struct {
	Provider string `json:"provider" form:"provider" binding:"required"`
	IDToken  string `json:"idToken" form:"idToken" binding:"required"`
}

// SignUpRequest carries a new account's profile and credentials.
type SignUpRequest struct {
	FirstName    string `json:"firstName" form:"firstName" binding:"required"`
	LastName     string `json:"lastName" form:"lastName" binding:"required"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" binding:"required"`
	Password     string `json:"password" form:"password" binding:"required,min=8"`
}

// CompleteProfileRequest fills in contact details a provider sign-in did not supply.
type CompleteProfileRequest struct {
	Email        string `json:"email,omitempty" form:"email"`
	MobileNumber string `json:"mobileNumber,omitempty" form:"mobileNumber"`
}

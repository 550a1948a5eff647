package handlers

import (
	"net/http"
	"net/url"
	"time"

	"bookingportal/middleware"
	"bookingportal/models"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "flash"

// Cookies writes the portal's cookies with a shared domain and Secure flag.
type Cookies struct {
	Domain string
	Secure bool
}

func (ck Cookies) set(c *gin.Context, name, value string, expires time.Time, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   ck.Domain,
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   ck.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetAuth writes the access and refresh tokens, each expiring at the server-provided
// epoch second.
func (ck Cookies) SetAuth(c *gin.Context, auth *models.AuthResult) {
	if auth == nil || auth.AccessToken == "" {
		return
	}
	ck.set(c, middleware.AccessTokenCookieName, auth.AccessToken, time.Unix(auth.AccessTokenExpiresAt, 0), 0)
	if auth.RefreshToken != "" {
		ck.set(c, middleware.RefreshTokenCookieName, auth.RefreshToken, time.Unix(auth.RefreshTokenExpiresAt, 0), 0)
	}
	middleware.SetAccessToken(c, auth.AccessToken)
}

// ClearAuth drops both tokens, for this request too.
func (ck Cookies) ClearAuth(c *gin.Context) {
	ck.set(c, middleware.AccessTokenCookieName, "", time.Time{}, -1)
	ck.set(c, middleware.RefreshTokenCookieName, "", time.Time{}, -1)
	middleware.SetAccessToken(c, "")
}

func (ck Cookies) SetSession(c *gin.Context, sessionID string) {
	ck.set(c, middleware.SessionCookieName, sessionID, time.Time{}, 0)
}

func (ck Cookies) ClearSession(c *gin.Context) {
	ck.set(c, middleware.SessionCookieName, "", time.Time{}, -1)
}

// SetFlash stores a notice shown once on the next page.
func (ck Cookies) SetFlash(c *gin.Context, message string) {
	ck.set(c, flashCookieName, url.QueryEscape(message), time.Time{}, 0)
}

// TakeFlash returns and clears the pending notice.
func (ck Cookies) TakeFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return ""
	}
	ck.set(c, flashCookieName, "", time.Time{}, -1)
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}

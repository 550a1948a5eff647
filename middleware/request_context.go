package middleware

import (
	"net/http"

	"bookingportal/services/identity"
	"bookingportal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	SessionCookieName      = "appointment_session"
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"
	VisitorCookieName      = "visitor_id"

	RequestIDHeader = "X-Request-ID"
)

// Gin context keys.
const (
	ctxLogger      = "logger"
	ctxSessionID   = "sessionID"
	ctxAccessToken = "accessToken"
	ctxVisitorID   = "visitorID"
	ctxLanguage    = "language"
)

// RequestContextMiddleware reads the portal cookies into the gin context, issues a
// visitor id when the browser has none, and attaches a request-scoped logger.
func RequestContextMiddleware(logger *zap.Logger, cookieDomain, defaultLanguage string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		sessionID, _ := c.Cookie(SessionCookieName)
		accessToken, _ := c.Cookie(AccessTokenCookieName)

		visitorID, err := c.Cookie(VisitorCookieName)
		if err != nil || visitorID == "" {
			visitorID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookieName, visitorID, 0, "/", cookieDomain, secure, true)
		}

		reqLogger := logger.With(
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
		)
		if sessionID != "" {
			reqLogger = reqLogger.With(zap.String("sessionId", sessionID))
		}

		c.Set(ctxLogger, reqLogger)
		c.Set(ctxSessionID, sessionID)
		c.Set(ctxAccessToken, accessToken)
		c.Set(ctxVisitorID, visitorID)
		c.Set(ctxLanguage, utils.ResolveLanguage(c.Request, defaultLanguage))
		c.Next()
	}
}

// RequestContext returns what the cookies say about the visitor.
func RequestContext(c *gin.Context) identity.RequestContext {
	return identity.RequestContext{
		SessionID:   c.GetString(ctxSessionID),
		AccessToken: c.GetString(ctxAccessToken),
	}
}

// SetAccessToken updates the token seen by the rest of this request, after sign-in.
func SetAccessToken(c *gin.Context, token string) {
	c.Set(ctxAccessToken, token)
}

func VisitorID(c *gin.Context) string {
	return c.GetString(ctxVisitorID)
}

func Language(c *gin.Context) language.Tag {
	if v, ok := c.Get(ctxLanguage); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return language.English
}

// Logger returns the request-scoped logger, or the global one outside a request.
func Logger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(ctxLogger); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

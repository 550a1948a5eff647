package handlers

import (
	"errors"
	"net/http"

	"bookingportal/middleware"
	"bookingportal/services/booking"
	"bookingportal/services/cancellation"
	"bookingportal/services/identity"
	"bookingportal/services/remote"
	"bookingportal/services/verification"
	"bookingportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// render answers a loader: a redirect or the JSON view.
func render(c *gin.Context, res *booking.StepResult) {
	if res.Redirect != "" {
		c.Redirect(http.StatusFound, res.Redirect)
		return
	}
	c.JSON(http.StatusOK, res.View)
}

// seeOther answers a successful action.
func seeOther(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
}

func localize(c *gin.Context, key string) string {
	return utils.Localize(middleware.Language(c), key)
}

// actionError maps known failures to {"error": message} with a 4xx status. Anything
// else is logged and left to utils.ErrorHandler.
func actionError(c *gin.Context, err error) {
	status, key := http.StatusBadRequest, ""
	switch {
	case errors.Is(err, identity.ErrMismatch):
		status, key = http.StatusConflict, utils.MsgSessionMismatch
	case errors.Is(err, identity.ErrNotAttachable):
		status, key = http.StatusConflict, utils.MsgNotAttachable
	case errors.Is(err, identity.ErrNotAuthenticated):
		status, key = http.StatusUnauthorized, utils.MsgNotAuthenticated
	case errors.Is(err, identity.ErrNoSession), errors.Is(err, booking.ErrNoSession):
		status, key = http.StatusGone, utils.MsgSessionExpired
	case errors.Is(err, booking.ErrInvalidProfile):
		key = utils.MsgInvalidProfile
	case errors.Is(err, booking.ErrNoServicesSelected):
		key = utils.MsgNoServicesSelected
	case errors.Is(err, booking.ErrInvalidStartTime):
		key = utils.MsgInvalidStartTime
	case errors.Is(err, cancellation.ErrInvalidToken):
		key = utils.MsgInvalidCancelToken
	case errors.Is(err, cancellation.ErrTokenExpired):
		status, key = http.StatusGone, utils.MsgExpiredCancelToken
	case errors.Is(err, verification.ErrTokenCleared):
		key = utils.MsgMissingVerification
	}
	if key != "" {
		utils.JSONError(c, status, localize(c, key), "")
		return
	}

	if apiErr, ok := remote.AsAPIError(err); ok {
		status = apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadRequest
		}
		utils.JSONError(c, status, remote.UserMessage(err, localize(c, utils.MsgGenericFailure)), apiErr.Code)
		return
	}

	getLogger(c).Error("unhandled action error", zap.Error(err))
	_ = c.Error(err)
}

// bindError answers a request whose form failed validation.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}

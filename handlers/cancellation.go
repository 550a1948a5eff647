package handlers

import (
	"net/http"
	"time"

	"bookingportal/services/cancellation"
	"bookingportal/utils"

	"github.com/gin-gonic/gin"
)

// CancellationHandler serves the signed-link cancellation page.
type CancellationHandler struct {
	Service  *cancellation.Service
	Cookies  Cookies
	HomePath string
	Now      func() time.Time
}

func NewCancellationHandler(service *cancellation.Service, cookies Cookies, homePath string) *CancellationHandler {
	return &CancellationHandler{Service: service, Cookies: cookies, HomePath: homePath, Now: time.Now}
}

type cancelPage struct {
	*cancellation.View
	Message string `json:"message,omitempty"`
}

func (h *CancellationHandler) CancelLoader(c *gin.Context) {
	view := h.Service.Load(c.Request.Context(), c.Query("token"), h.Now())
	page := cancelPage{View: view}
	switch view.Status {
	case cancellation.StatusInvalid:
		page.Message = localize(c, utils.MsgInvalidCancelToken)
	case cancellation.StatusExpired:
		page.Message = localize(c, utils.MsgExpiredCancelToken)
	}
	c.JSON(http.StatusOK, page)
}

// CancelHandler requires confirm=true; the token is checked again at this point.
func (h *CancellationHandler) CancelHandler(c *gin.Context) {
	if c.PostForm("confirm") != "true" {
		utils.JSONError(c, http.StatusBadRequest, localize(c, utils.MsgCancelNotConfirmed), "")
		return
	}
	if err := h.Service.Cancel(c.Request.Context(), c.PostForm("token"), h.Now()); err != nil {
		actionError(c, err)
		return
	}
	h.Cookies.SetFlash(c, localize(c, utils.MsgCancelConfirmed))
	seeOther(c, h.HomePath)
}

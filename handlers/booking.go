package handlers

import (
	"net/http"
	"strconv"

	"bookingportal/middleware"
	"bookingportal/services/booking"
	"bookingportal/services/remote"
	"bookingportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the selection pipeline.
type BookingHandler struct {
	Pipeline     *booking.Pipeline
	Appointments remote.AppointmentAPI
	Cookies      Cookies
}

func NewBookingHandler(pipeline *booking.Pipeline, appointments remote.AppointmentAPI, cookies Cookies) *BookingHandler {
	return &BookingHandler{Pipeline: pipeline, Appointments: appointments, Cookies: cookies}
}

// EntryHandler resumes a booking. A `session` query parameter hands over a session
// started elsewhere and is stored in the session cookie.
func (h *BookingHandler) EntryHandler(c *gin.Context) {
	req := middleware.RequestContext(c)
	if sessionID := c.Query("session"); sessionID != "" {
		h.Cookies.SetSession(c, sessionID)
		req.SessionID = sessionID
	}
	res := h.Pipeline.Resume(c.Request.Context(), req)
	if view, ok := res.View.(*booking.EntryView); ok {
		view.Notice = h.Cookies.TakeFlash(c)
	}
	render(c, res)
}

func (h *BookingHandler) ProfileLoader(c *gin.Context) {
	render(c, h.Pipeline.LoadProfile(c.Request.Context(), middleware.RequestContext(c)))
}

func (h *BookingHandler) SelectProfileHandler(c *gin.Context) {
	profileID, err := strconv.Atoi(c.PostForm("profileId"))
	if err != nil {
		profileID = 0
	}
	res, err := h.Pipeline.SelectProfile(c.Request.Context(), middleware.RequestContext(c), profileID)
	if err != nil {
		actionError(c, err)
		return
	}
	seeOther(c, res.Redirect)
}

func (h *BookingHandler) ServicesLoader(c *gin.Context) {
	render(c, h.Pipeline.LoadServices(c.Request.Context(), middleware.RequestContext(c)))
}

func (h *BookingHandler) SelectServicesHandler(c *gin.Context) {
	var ids []int
	for _, raw := range c.PostFormArray("serviceIds") {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, localize(c, utils.MsgNoServicesSelected), err.Error())
			return
		}
		ids = append(ids, id)
	}
	res, err := h.Pipeline.SelectServices(c.Request.Context(), middleware.RequestContext(c), ids)
	if err != nil {
		actionError(c, err)
		return
	}
	seeOther(c, res.Redirect)
}

func (h *BookingHandler) TimeLoader(c *gin.Context) {
	from := booking.ParseFromDay(c.Query("from"))
	render(c, h.Pipeline.LoadTime(c.Request.Context(), middleware.RequestContext(c), from))
}

func (h *BookingHandler) SubmitStartTimeHandler(c *gin.Context) {
	res, err := h.Pipeline.SubmitStartTime(c.Request.Context(), middleware.RequestContext(c), c.PostForm("startTime"))
	if err != nil {
		actionError(c, err)
		return
	}
	seeOther(c, res.Redirect)
}

func (h *BookingHandler) OverviewLoader(c *gin.Context) {
	render(c, h.Pipeline.LoadOverview(c.Request.Context(), middleware.RequestContext(c)))
}

// SubmitHandler finalizes the booking. The session cookie is dropped once the
// session became an appointment.
func (h *BookingHandler) SubmitHandler(c *gin.Context) {
	res, err := h.Pipeline.Submit(c.Request.Context(), middleware.RequestContext(c))
	if err != nil {
		actionError(c, err)
		return
	}
	if _, ok := res.View.(*booking.ConfirmedView); ok {
		h.Cookies.ClearSession(c)
	}
	seeOther(c, res.Redirect)
}

func (h *BookingHandler) ConfirmedLoader(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("appointmentId"))
	if err != nil || id <= 0 {
		c.Redirect(http.StatusFound, h.Pipeline.EntryPath)
		return
	}
	appointment, err := h.Appointments.GetAppointmentByID(c.Request.Context(), id)
	if err != nil {
		getLogger(c).Warn("confirmation: load appointment failed", zap.Int("appointmentId", id), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"error": remote.UserMessage(err, localize(c, utils.MsgAppointmentNotFound))})
		return
	}
	c.JSON(http.StatusOK, booking.ConfirmedView{Appointment: appointment})
}

package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookingportal/models"
)

func (c *Client) GetSession(ctx context.Context, accessToken, sessionID string) (*models.AppointmentSession, error) {
	var session models.AppointmentSession
	if err := c.do(ctx, http.MethodGet, sessionPath(sessionID), accessToken, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GetAppointmentSessionProfiles(ctx context.Context, accessToken, sessionID string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := c.do(ctx, http.MethodGet, sessionPath(sessionID, "profiles"), accessToken, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) SelectAppointmentSessionProfile(ctx context.Context, accessToken, sessionID string, profileID int) error {
	body := map[string]int{"profileId": profileID}
	return c.do(ctx, http.MethodPost, sessionPath(sessionID, "profile"), accessToken, body, nil)
}

func (c *Client) GetAppointmentSessionProfileServices(ctx context.Context, accessToken, sessionID string) ([]models.ServiceGroup, error) {
	var groups []models.ServiceGroup
	if err := c.do(ctx, http.MethodGet, sessionPath(sessionID, "profile", "services"), accessToken, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) SelectAppointmentSessionProfileServices(ctx context.Context, accessToken, sessionID string, serviceIDs []int) error {
	body := map[string][]int{"serviceIds": serviceIDs}
	return c.do(ctx, http.MethodPost, sessionPath(sessionID, "services"), accessToken, body, nil)
}

func (c *Client) GetAppointmentSessionSchedules(ctx context.Context, accessToken, sessionID string, from time.Time) ([]models.TimeSlot, error) {
	path := sessionPath(sessionID, "schedules")
	if !from.IsZero() {
		path += "?from=" + url.QueryEscape(from.Format(time.RFC3339))
	}
	var slots []models.TimeSlot
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) SubmitAppointmentSessionStartTime(ctx context.Context, accessToken, sessionID, startTime string) error {
	body := map[string]string{"startTime": startTime}
	return c.do(ctx, http.MethodPost, sessionPath(sessionID, "start-time"), accessToken, body, nil)
}

func (c *Client) SubmitAppointmentSession(ctx context.Context, accessToken, sessionID string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := c.do(ctx, http.MethodPost, sessionPath(sessionID, "submit"), accessToken, struct{}{}, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) GetAppointmentByID(ctx context.Context, appointmentID int) (*models.Appointment, error) {
	var appointment models.Appointment
	path := "/appointments/" + strconv.Itoa(appointmentID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) CancelAppointment(ctx context.Context, claims models.CancelAppointmentClaims) error {
	path := "/appointments/" + strconv.Itoa(claims.AppointmentID) + "/cancel"
	return c.do(ctx, http.MethodPost, path, "", claims, nil)
}

package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookingportal/models"
	"bookingportal/services/remote"

	"go.uber.org/zap"
)

type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusExpired Status = "expired"
)

// View is the cancellation page.
type View struct {
	Status      Status              `json:"status"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
	CanCancel   bool                `json:"canCancel"`
	Error       string              `json:"error,omitempty"`
}

type Service struct {
	API    remote.AppointmentAPI
	Logger *zap.Logger
}

func NewService(api remote.AppointmentAPI, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{API: api, Logger: logger}
}

// Load never fetches for an undecodable token. An expired token still shows the
// appointment when it can be fetched, with cancellation disabled.
func (s *Service) Load(ctx context.Context, raw string, now time.Time) *View {
	claims, err := Validate(raw, now)
	switch {
	case errors.Is(err, ErrInvalidToken):
		return &View{Status: StatusInvalid}
	case errors.Is(err, ErrTokenExpired):
		view := &View{Status: StatusExpired}
		if appt, err := s.API.GetAppointmentByID(ctx, claims.AppointmentID); err == nil {
			view.Appointment = appt
		} else {
			s.Logger.Debug("cancellation: expired link, appointment not shown", zap.Error(err))
		}
		return view
	}

	view := &View{Status: StatusValid}
	appt, err := s.API.GetAppointmentByID(ctx, claims.AppointmentID)
	if err != nil {
		s.Logger.Warn("cancellation: load appointment failed",
			zap.Int("appointmentId", claims.AppointmentID), zap.Error(err))
		view.Error = remote.UserMessage(err, "")
		return view
	}
	view.Appointment = appt
	view.CanCancel = true
	return view
}

// Cancel re-validates the token at action time before posting the claims back.
func (s *Service) Cancel(ctx context.Context, raw string, now time.Time) error {
	claims, err := Validate(raw, now)
	if err != nil {
		return err
	}
	if err := s.API.CancelAppointment(ctx, claims); err != nil {
		return fmt.Errorf("cancel appointment %d: %w", claims.AppointmentID, err)
	}
	s.Logger.Info("cancellation: appointment cancelled", zap.Int("appointmentId", claims.AppointmentID))
	return nil
}

package models

import (
	"slices"
	"time"
)

// Step is a server-reported booking step marker.
type Step string

const (
	StepSelectProfile   Step = "SELECT_PROFILE"
	StepSelectServices  Step = "SELECT_SERVICES"
	StepSelectStartTime Step = "SELECT_START_TIME"
	StepIdentify        Step = "IDENTIFY"
	StepSubmit          Step = "SUBMIT"
)

// AppointmentSession is the remote, server-held booking session. The portal never
// creates or deletes it; it only advances it through API calls.
type AppointmentSession struct {
	SessionID          string     `json:"sessionId"`
	CompanyID          int        `json:"companyId"`
	ContactID          *int       `json:"contactId,omitempty"`
	UserID             *int       `json:"userId,omitempty"`
	SelectedProfileID  *int       `json:"selectedProfileId,omitempty"`
	SelectedServiceIDs []int      `json:"selectedServiceIds"`
	SelectedStartTime  *time.Time `json:"selectedStartTime,omitempty"`
	Steps              []Step     `json:"steps"`
}

// HasStep reports whether the server listed step for this session.
func (s *AppointmentSession) HasStep(step Step) bool {
	return slices.Contains(s.Steps, step)
}

// HasServices reports whether at least one service is selected.
func (s *AppointmentSession) HasServices() bool {
	return len(s.SelectedServiceIDs) > 0
}

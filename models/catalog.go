package models

import "time"

// Profile is a bookable stylist/employee profile.
type Profile struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Service is a bookable service offered by a profile.
type Service struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ServiceGroup groups services for display.
type ServiceGroup struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Services []Service `json:"services"`
}

// TimeSlot is one available start time computed by the API.
type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Appointment is a confirmed booking.
type Appointment struct {
	ID          int       `json:"id"`
	CompanyID   int       `json:"companyId"`
	ProfileName string    `json:"profileName,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Services    []Service `json:"services,omitempty"`
	Status      string    `json:"status,omitempty"`
}

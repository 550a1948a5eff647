package models

// CancelAppointmentClaims are decoded from a cancellation link and never persisted.
type CancelAppointmentClaims struct {
	AppointmentID int    `json:"appointmentId"`
	ExpiresAt     int64  `json:"expiresAt"`
	Token         string `json:"token"`
}

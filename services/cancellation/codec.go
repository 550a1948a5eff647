package cancellation

import (
	"errors"
	"math"
	"strings"
	"time"

	"bookingportal/models"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid cancellation token")
	ErrTokenExpired = errors.New("cancellation token expired")
)

// Decode extracts the claims of a cancellation link token. The signature is not
// checked here; the API verifies it when the token is posted back. Decode is pure.
func Decode(raw string) (models.CancelAppointmentClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.CancelAppointmentClaims{}, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return models.CancelAppointmentClaims{}, ErrInvalidToken
	}

	id, ok := wholeNumber(claims["appointmentId"], math.MaxInt32)
	if !ok || id <= 0 {
		return models.CancelAppointmentClaims{}, ErrInvalidToken
	}
	exp, ok := wholeNumber(claims["exp"], maxExpiresAt)
	if !ok {
		return models.CancelAppointmentClaims{}, ErrInvalidToken
	}

	return models.CancelAppointmentClaims{
		AppointmentID: int(id),
		ExpiresAt:     exp,
		Token:         raw,
	}, nil
}

// maxExpiresAt keeps expiresAt*1000 inside int64.
const maxExpiresAt = math.MaxInt64 / 1000

// wholeNumber accepts integral JSON numbers with |v| <= limit.
func wholeNumber(v any, limit int64) (int64, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > float64(limit) {
		return 0, false
	}
	return int64(f), true
}

// Expired compares in milliseconds: expiresAt is in seconds.
func Expired(claims models.CancelAppointmentClaims, now time.Time) bool {
	return claims.ExpiresAt*1000 < now.UnixMilli()
}

// Validate decodes raw and rejects it when expired at now.
func Validate(raw string, now time.Time) (models.CancelAppointmentClaims, error) {
	claims, err := Decode(raw)
	if err != nil {
		return claims, err
	}
	if Expired(claims, now) {
		return claims, ErrTokenExpired
	}
	return claims, nil
}

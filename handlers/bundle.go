package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all the portal's endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking pipeline
	EntryHandler           gin.HandlerFunc
	ProfileLoader          gin.HandlerFunc
	SelectProfileHandler   gin.HandlerFunc
	ServicesLoader         gin.HandlerFunc
	SelectServicesHandler  gin.HandlerFunc
	TimeLoader             gin.HandlerFunc
	SubmitStartTimeHandler gin.HandlerFunc
	OverviewLoader         gin.HandlerFunc
	SubmitHandler          gin.HandlerFunc
	ConfirmedLoader        gin.HandlerFunc

	// Identity
	IdentifyLoader            gin.HandlerFunc
	SignInHandler             gin.HandlerFunc
	ProviderSignInHandler     gin.HandlerFunc
	SignUpHandler             gin.HandlerFunc
	ContinueHandler           gin.HandlerFunc
	AttachHandler             gin.HandlerFunc
	CompleteProfileHandler    gin.HandlerFunc
	VerifyMobileHandler       gin.HandlerFunc
	ResendVerificationHandler gin.HandlerFunc
	ClearPendingHandler       gin.HandlerFunc
	ClearSessionUserHandler   gin.HandlerFunc
	SaveDraftHandler          gin.HandlerFunc
	VerificationEvents        gin.HandlerFunc

	// Cancellation
	CancelLoader  gin.HandlerFunc
	CancelHandler gin.HandlerFunc

	EntryPath         string
	MaxRequestsPerMin int
}

// NewHandlerBundle wires the handler structs into the bundle.
func NewHandlerBundle(b *BookingHandler, id *IdentityHandler, v *VerificationHandler, cancel *CancellationHandler, maxRequestsPerMin int) *HandlerBundle {
	return &HandlerBundle{
		EntryHandler:           b.EntryHandler,
		ProfileLoader:          b.ProfileLoader,
		SelectProfileHandler:   b.SelectProfileHandler,
		ServicesLoader:         b.ServicesLoader,
		SelectServicesHandler:  b.SelectServicesHandler,
		TimeLoader:             b.TimeLoader,
		SubmitStartTimeHandler: b.SubmitStartTimeHandler,
		OverviewLoader:         b.OverviewLoader,
		SubmitHandler:          b.SubmitHandler,
		ConfirmedLoader:        b.ConfirmedLoader,

		IdentifyLoader:            id.IdentifyLoader,
		SignInHandler:             id.SignInHandler,
		ProviderSignInHandler:     id.ProviderSignInHandler,
		SignUpHandler:             id.SignUpHandler,
		ContinueHandler:           id.ContinueHandler,
		AttachHandler:             id.AttachHandler,
		CompleteProfileHandler:    id.CompleteProfileHandler,
		VerifyMobileHandler:       id.VerifyMobileHandler,
		ResendVerificationHandler: id.ResendVerificationHandler,
		ClearPendingHandler:       id.ClearPendingHandler,
		ClearSessionUserHandler:   id.ClearSessionUserHandler,
		SaveDraftHandler:          id.SaveDraftHandler,
		VerificationEvents:        v.EventsHandler,

		CancelLoader:  cancel.CancelLoader,
		CancelHandler: cancel.CancelHandler,

		EntryPath:         b.Pipeline.EntryPath,
		MaxRequestsPerMin: maxRequestsPerMin,
	}
}

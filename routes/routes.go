package routes

import (
	"net/http"
	"strings"
	"time"

	"bookingportal/handlers"
	"bookingportal/middleware"
	"bookingportal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the selection pipeline.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET(hb.EntryPath, hb.EntryHandler)

	bookingGroup := r.Group("/booking")
	{
		bookingGroup.GET("/profile", hb.ProfileLoader)
		bookingGroup.POST("/profile", hb.SelectProfileHandler)
		bookingGroup.GET("/services", hb.ServicesLoader)
		bookingGroup.POST("/services", hb.SelectServicesHandler)
		bookingGroup.GET("/time", hb.TimeLoader)
		bookingGroup.POST("/time", hb.SubmitStartTimeHandler)
		bookingGroup.GET("/overview", hb.OverviewLoader)
		bookingGroup.POST("/overview", hb.SubmitHandler)
		bookingGroup.GET("/confirmed", hb.ConfirmedLoader)
	}
}

// RegisterIdentityRoutes registers the identify step. Mutating actions are rate limited.
func RegisterIdentityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	identify := r.Group("/booking/identify")
	{
		identify.GET("", hb.IdentifyLoader)
		identify.GET("/events", hb.VerificationEvents)
		identify.POST("/drafts/:form", hb.SaveDraftHandler)

		actions := identify.Group("")
		actions.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
		actions.POST("/sign-in", hb.SignInHandler)
		actions.POST("/sign-in/:provider", hb.ProviderSignInHandler)
		actions.POST("/sign-up", hb.SignUpHandler)
		actions.POST("/continue", hb.ContinueHandler)
		actions.POST("/attach", hb.AttachHandler)
		actions.POST("/complete-profile", hb.CompleteProfileHandler)
		actions.POST("/verify-mobile", hb.VerifyMobileHandler)
		actions.POST("/resend", hb.ResendVerificationHandler)
		actions.POST("/clear-pending", hb.ClearPendingHandler)
		actions.POST("/clear-user", hb.ClearSessionUserHandler)
	}
}

// RegisterCancellationRoutes registers the signed-link cancellation page.
func RegisterCancellationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	cancelGroup := r.Group("/appointments/cancel")
	{
		cancelGroup.GET("", hb.CancelLoader)
		cancelGroup.POST("", middleware.RateLimitMiddleware(hb.MaxRequestsPerMin), hb.CancelHandler)
	}
}

// RegisterHealthRoute reports the last health monitor snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		if !status.Redis || !status.API {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
	})
}

// RegisterRoutes installs CORS and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(allowedOrigins),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept-Language", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterIdentityRoutes(r, hb)
	RegisterCancellationRoutes(r, hb)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

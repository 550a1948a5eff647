package handlers

import (
	"bookingportal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped Zap logger set by the request context middleware.
func getLogger(c *gin.Context) *zap.Logger {
	return middleware.Logger(c)
}

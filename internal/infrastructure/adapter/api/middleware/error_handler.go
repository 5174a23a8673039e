package middleware

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers from panics and returns the generic error envelope
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": c.GetHeader("X-Request-ID"),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					ErrorCode:    domainerr.CodeGenericError,
					ErrorMessage: "Unable to process your request, please try later",
				})
			}
		}()

		c.Next()
	}
}

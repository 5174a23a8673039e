package routes

import (
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the merchant API
func SetupRoutes(router *gin.Engine, paymentHandler *handler.PaymentHandler) {
	paymentRoutes := router.Group("/payments")
	{
		// POST /payments
		paymentRoutes.POST("", paymentHandler.CreatePayment)

		// POST /payments/:txnReference/initiate
		paymentRoutes.POST("/:txnReference/initiate", paymentHandler.InitiatePayment)

		// POST /payments/:txnReference/notifications
		paymentRoutes.POST("/:txnReference/notifications", paymentHandler.HandleNotification)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}

package providermock

import (
	"errors"
	"net/http"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// Handler exposes the provider mock over HTTP
type Handler struct {
	service *Service
	logger  coreport.Logger
}

// NewHandler creates a new provider mock handler
func NewHandler(service *Service, logger coreport.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Deposit handles POST /v1/deposits
func (h *Handler) Deposit(c *gin.Context) {
	var envelope entity.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		h.logger.Error("Invalid deposit envelope", map[string]any{
			"error": err.Error(),
		})
		h.respondError(c, &MockError{
			HTTPStatus: http.StatusBadRequest,
			Code:       CodeGenericException,
			Message:    "Malformed deposit envelope",
			Method:     entity.MethodDeposit,
		})
		return
	}

	response, err := h.service.Deposit(&envelope)
	if err != nil {
		h.respondMockError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ProcessPayment handles POST /payments/:paymentId/process, the operator
// endpoint that settles or fails an accepted deposit
func (h *Handler) ProcessPayment(c *gin.Context) {
	paymentID := c.Param("paymentId")

	var req struct {
		Status string `json:"status" binding:"required,oneof=SUCCESS FAILED"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be SUCCESS or FAILED"})
		return
	}

	if err := h.service.ProcessPayment(paymentID, req.Status); err != nil {
		h.respondMockError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "PROCESSING"})
}

func (h *Handler) respondMockError(c *gin.Context, err error) {
	var mockErr *MockError
	if !errors.As(err, &mockErr) {
		mockErr = &MockError{
			HTTPStatus: http.StatusInternalServerError,
			Code:       CodeGenericException,
			Message:    "Unable to process your request",
			Method:     entity.MethodDeposit,
		}
	}
	h.respondError(c, mockErr)
}

func (h *Handler) respondError(c *gin.Context, mockErr *MockError) {
	c.JSON(mockErr.HTTPStatus, h.service.ErrorEnvelope(mockErr))
}

// SetupRoutes registers the provider mock endpoints
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.POST("/v1/deposits", handler.Deposit)
	router.POST("/payments/:paymentId/process", handler.ProcessPayment)
}

package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-processor/internal/domain/usecase/payment"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	service *payment.Service
	logger  coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(service *payment.Service, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger,
	}
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid create payment request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode:    domainerr.CodeGenericError,
			ErrorMessage: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.service.CreatePayment(c.Request.Context(), &entity.PaymentRequest{
		Amount:                       req.Amount,
		Currency:                     req.Currency,
		PaymentMethod:                req.PaymentMethod,
		PaymentType:                  req.PaymentType,
		Provider:                     req.Provider,
		CustomerID:                   req.CustomerID,
		MobileNo:                     req.MobileNo,
		MerchantTransactionReference: req.MerchantTransactionReference,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePaymentResponse{
		TxnReference: result.TxnReference,
		TxnStatus:    string(result.TxnStatus),
	})
}

// InitiatePayment handles POST /payments/:txnReference/initiate
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	txnReference := c.Param("txnReference")

	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid initiate payment request format", map[string]any{
			"txn_reference": txnReference,
			"error":         err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode:    domainerr.CodeGenericError,
			ErrorMessage: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.service.InitiatePayment(c.Request.Context(), txnReference, &payment.InitiateRequest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Country:    req.Country,
		Locale:     req.Locale,
		SuccessURL: req.SuccessURL,
		FailURL:    req.FailURL,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InitiatePaymentResponse{
		TxnReference: result.TxnReference,
		TxnStatus:    string(result.TxnStatus),
		URL:          result.URL,
	})
}

// HandleNotification handles POST /payments/:txnReference/notifications,
// the provider's asynchronous settlement callback
func (h *PaymentHandler) HandleNotification(c *gin.Context) {
	txnReference := c.Param("txnReference")

	var envelope entity.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		h.logger.Error("Invalid notification format", map[string]any{
			"txn_reference": txnReference,
			"error":         err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode:    domainerr.CodeGenericError,
			ErrorMessage: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.service.HandleNotification(c.Request.Context(), txnReference, &envelope); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// respondError maps any typed error to the uniform error envelope. Untyped
// errors fall back to the generic code so internal detail never leaks.
func (h *PaymentHandler) respondError(c *gin.Context, err error) {
	h.logger.Error("Payment request failed", map[string]any{
		"path":       c.Request.URL.Path,
		"error":      err.Error(),
		"error_code": domainerr.Code(err),
	})

	c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
		ErrorCode:    domainerr.Code(err),
		ErrorMessage: domainerr.Message(err),
	})
}

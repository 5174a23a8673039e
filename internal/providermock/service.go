package providermock

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-processor/internal/domain/signature"
	"github.com/google/uuid"
)

// Provider-side error codes, returned inside the signed error envelope
const (
	CodeGenericException = "1000"
	CodeInvalidSignature = "1001"
	CodeUsernameMissing  = "1002"
	CodeUnknownPayment   = "1003"
)

// MockError is the provider-side typed error, rendered as a signed error
// envelope by the handler
type MockError struct {
	HTTPStatus int
	Code       string
	Message    string
	UUID       string
	Method     string
}

// Error implements the error interface for MockError
func (e *MockError) Error() string {
	return e.Code + ": " + e.Message
}

// Service is the provider counterpart: it verifies inbound deposit
// envelopes, issues signed responses and later delivers signed settlement
// notifications. It speaks the same signed-envelope protocol as the
// merchant side.
type Service struct {
	signer          *signature.Engine
	notifier        *Notifier
	logger          coreport.Logger
	redirectBaseURL string

	mu               sync.Mutex
	notificationURLs map[string]string // order id -> merchant callback URL
}

// NewService creates the provider mock service. The signer holds the
// provider's private key and the merchant's public key.
func NewService(signer *signature.Engine, notifier *Notifier, logger coreport.Logger, redirectBaseURL string) *Service {
	return &Service{
		signer:           signer,
		notifier:         notifier,
		logger:           logger,
		redirectBaseURL:  redirectBaseURL,
		notificationURLs: make(map[string]string),
	}
}

// Deposit verifies the inbound signed envelope and answers with a signed
// result carrying a freshly minted order id and the redirect URL
func (s *Service) Deposit(envelope *entity.Envelope) (*entity.Envelope, error) {
	if envelope.Result == nil {
		return nil, &MockError{
			HTTPStatus: http.StatusBadRequest,
			Code:       CodeGenericException,
			Message:    "Malformed deposit envelope",
			Method:     entity.MethodDeposit,
		}
	}

	requestUUID := envelope.Result.UUID

	var data entity.DepositRequestData
	if raw, err := json.Marshal(envelope.Result.Data); err == nil {
		_ = json.Unmarshal(raw, &data)
	}

	if !s.signer.Verify(envelope.Result.Method, requestUUID, data, envelope.Result.Signature) {
		s.logger.Warn("Invalid signature on deposit request", map[string]any{
			"uuid": requestUUID,
		})
		return nil, &MockError{
			HTTPStatus: http.StatusUnauthorized,
			Code:       CodeInvalidSignature,
			Message:    "Unable to verify request signature",
			UUID:       requestUUID,
			Method:     entity.MethodDeposit,
		}
	}

	if data.Username == "" {
		s.logger.Warn("Missing username in deposit request", map[string]any{
			"uuid": requestUUID,
		})
		return nil, &MockError{
			HTTPStatus: http.StatusBadRequest,
			Code:       CodeUsernameMissing,
			Message:    "Username is missing in the deposit request",
			UUID:       requestUUID,
			Method:     entity.MethodDeposit,
		}
	}

	orderID := uuid.NewString()
	responseData := entity.DepositResponseData{
		OrderID: orderID,
		URL:     s.redirectBaseURL + orderID,
	}

	sig, err := s.signer.Sign(entity.MethodDeposit, requestUUID, responseData)
	if err != nil {
		s.logger.Error("Cannot sign deposit response", map[string]any{
			"uuid":  requestUUID,
			"error": err.Error(),
		})
		return nil, &MockError{
			HTTPStatus: http.StatusInternalServerError,
			Code:       CodeGenericException,
			Message:    "Unable to process deposit request",
			UUID:       requestUUID,
			Method:     entity.MethodDeposit,
		}
	}

	s.mu.Lock()
	s.notificationURLs[orderID] = data.NotificationURL
	s.mu.Unlock()

	s.logger.Info("Deposit accepted", map[string]any{
		"uuid":     requestUUID,
		"order_id": orderID,
	})

	return &entity.Envelope{
		Version: entity.ProtocolVersion,
		Result: &entity.Result{
			UUID:      requestUUID,
			Method:    entity.MethodDeposit,
			Signature: sig,
			Data:      responseData,
		},
	}, nil
}

// ProcessPayment triggers the asynchronous settlement notification for an
// accepted deposit. Delivery is best-effort: failures are logged, never
// escalated.
func (s *Service) ProcessPayment(orderID, status string) error {
	s.mu.Lock()
	notificationURL, ok := s.notificationURLs[orderID]
	s.mu.Unlock()

	if !ok {
		return &MockError{
			HTTPStatus: http.StatusNotFound,
			Code:       CodeUnknownPayment,
			Message:    "No deposit found for payment " + orderID,
			Method:     entity.MethodNotification,
		}
	}

	payload := entity.NotificationPayload{
		PaymentID: orderID,
		Status:    status,
	}
	if status == entity.NotificationSuccess {
		payload.Code = "AC001"
		payload.Message = "Transaction succeeded"
	} else {
		payload.Code = "FL001"
		payload.Message = "Transaction failed"
	}

	go s.notifier.Deliver(notificationURL, payload)
	return nil
}

// ErrorEnvelope renders a typed mock error as the signed error envelope
func (s *Service) ErrorEnvelope(mockErr *MockError) *entity.Envelope {
	errorData := entity.ErrorData{
		Code:    mockErr.Code,
		Message: mockErr.Message,
	}

	sig, err := s.signer.Sign(mockErr.Method, mockErr.UUID, errorData)
	if err != nil {
		s.logger.Error("Cannot sign error envelope", map[string]any{
			"uuid":  mockErr.UUID,
			"error": err.Error(),
		})
	}

	return &entity.Envelope{
		Version: entity.ProtocolVersion,
		Error: &entity.ErrorWrapper{
			Name:    entity.ErrorName,
			Code:    mockErr.Code,
			Message: mockErr.Message,
			Error: &entity.ErrorDetails{
				UUID:      mockErr.UUID,
				Method:    mockErr.Method,
				Signature: sig,
				Data:      errorData,
			},
		},
	}
}

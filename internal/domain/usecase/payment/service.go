package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-processor/internal/domain/port/persistence"
	providerport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/provider"
	"github.com/amirhossein-jamali/payment-processor/internal/domain/signature"
	"github.com/amirhossein-jamali/payment-processor/internal/domain/usecase/validation"
	"github.com/google/uuid"
)

// Config carries the merchant-side settings for building provider requests
type Config struct {
	Username        string
	Password        string
	NotificationURL string // base URL; the txnReference is appended per request
}

// CreatePaymentResult is the outcome of creating a payment transaction
type CreatePaymentResult struct {
	TxnReference string
	TxnStatus    entity.TxnStatus
}

// InitiateRequest carries the end-user details supplied at initiation time
type InitiateRequest struct {
	FirstName  string
	LastName   string
	Email      string
	Country    string
	Locale     string
	SuccessURL string
	FailURL    string
}

// InitiatePaymentResult is the outcome of a successful initiation
type InitiatePaymentResult struct {
	TxnReference string
	TxnStatus    entity.TxnStatus
	URL          string
}

// Service owns the payment transaction lifecycle. It screens inbound
// requests through the validation pipeline, signs outbound deposit requests,
// calls the provider gateway and persists every status transition before
// returning to the caller.
type Service struct {
	repo     persistence.TransactionRepository
	gateway  providerport.DepositGateway
	signer   *signature.Engine
	pipeline *validation.Pipeline
	logger   coreport.Logger
	config   Config
	refLocks *referenceLocker
}

// NewService creates the payment lifecycle service
func NewService(
	repo persistence.TransactionRepository,
	gateway providerport.DepositGateway,
	signer *signature.Engine,
	pipeline *validation.Pipeline,
	logger coreport.Logger,
	config Config,
) *Service {
	return &Service{
		repo:     repo,
		gateway:  gateway,
		signer:   signer,
		pipeline: pipeline,
		logger:   logger,
		config:   config,
		refLocks: newReferenceLocker(),
	}
}

// CreatePayment validates the request, mints a fresh txnReference and
// persists the transaction in CREATED status. The reference is assigned
// exactly once here and never regenerated.
func (s *Service) CreatePayment(ctx context.Context, request *entity.PaymentRequest) (*CreatePaymentResult, error) {
	s.logger.Info("Creating payment transaction", map[string]any{
		"currency": request.Currency,
		"provider": request.Provider,
	})

	if err := s.pipeline.Run(request); err != nil {
		return nil, err
	}

	userID, err := strconv.ParseUint(request.CustomerID, 10, 64)
	if err != nil {
		return nil, errs.NewValidationError(validation.RuleCustomerID,
			errs.CodeInvalidCustomerID, "Customer ID must be numeric")
	}

	txnReference := uuid.NewString()
	txn, err := entity.NewTransaction(
		txnReference,
		userID,
		entity.PaymentMethodID(request.PaymentMethod),
		entity.ProviderID(request.Provider),
		entity.PaymentTypeID(request.PaymentType),
		request.Amount,
		request.Currency,
		request.MerchantTransactionReference,
	)
	if err != nil {
		return nil, errs.NewGenericError(err)
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		s.logger.Error("Failed to persist created transaction", map[string]any{
			"txn_reference": txnReference,
			"error":         err.Error(),
		})
		return nil, errs.NewGenericError(err)
	}

	s.logger.Info("Payment transaction created", map[string]any{
		"txn_reference": txn.TxnReference,
		"status":        txn.Status,
	})

	return &CreatePaymentResult{
		TxnReference: txn.TxnReference,
		TxnStatus:    txn.Status,
	}, nil
}

// InitiatePayment loads the transaction, transitions it to INITIATED, signs
// and sends the deposit request, then settles on PENDING or FAILED. The
// transaction is never left in INITIATED after this method returns,
// regardless of which layer the failure originated in.
func (s *Service) InitiatePayment(ctx context.Context, txnReference string, request *InitiateRequest) (*InitiatePaymentResult, error) {
	release := s.refLocks.Acquire(txnReference)
	defer release()

	txn, err := s.repo.GetByReference(ctx, txnReference)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.NewNotFoundError(txnReference)
		}
		return nil, errs.NewGenericError(err)
	}

	if err := txn.MarkInitiated(); err != nil {
		return nil, errs.NewGenericError(err)
	}
	if err := s.repo.Update(ctx, txn); err != nil {
		return nil, errs.NewGenericError(err)
	}

	result, err := s.callProvider(ctx, txn, request)
	if err != nil {
		s.failTransaction(ctx, txn, err)
		return nil, err
	}

	if err := txn.MarkPending(result.Data.OrderID); err != nil {
		wrapped := errs.NewGenericError(err)
		s.failTransaction(ctx, txn, wrapped)
		return nil, wrapped
	}
	if err := s.repo.Update(ctx, txn); err != nil {
		wrapped := errs.NewGenericError(err)
		s.failTransaction(ctx, txn, wrapped)
		return nil, wrapped
	}

	s.logger.Info("Payment initiated with provider", map[string]any{
		"txn_reference":      txn.TxnReference,
		"provider_reference": txn.ProviderReference,
		"status":             txn.Status,
	})

	return &InitiatePaymentResult{
		TxnReference: txn.TxnReference,
		TxnStatus:    txn.Status,
		URL:          result.Data.URL,
	}, nil
}

// HandleNotification applies the provider's asynchronous settlement outcome.
// The envelope signature is verified fail-closed before any state change.
func (s *Service) HandleNotification(ctx context.Context, txnReference string, envelope *entity.Envelope) error {
	release := s.refLocks.Acquire(txnReference)
	defer release()

	if envelope.Result == nil {
		return errs.NewInvalidSignatureError()
	}

	var payload entity.NotificationPayload
	if err := decodePayload(envelope.Result.Data, &payload); err != nil {
		return errs.NewInvalidSignatureError()
	}

	if !s.signer.Verify(envelope.Result.Method, envelope.Result.UUID, payload, envelope.Result.Signature) {
		s.logger.Warn("Rejecting notification with invalid signature", map[string]any{
			"txn_reference": txnReference,
			"uuid":          envelope.Result.UUID,
		})
		return errs.NewInvalidSignatureError()
	}

	txn, err := s.repo.GetByReference(ctx, txnReference)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return errs.NewNotFoundError(txnReference)
		}
		return errs.NewGenericError(err)
	}

	switch payload.Status {
	case entity.NotificationSuccess:
		err = txn.MarkSettled()
	case entity.NotificationFailed:
		err = txn.MarkFailed(payload.Code, payload.Message)
	default:
		return errs.NewGenericError(fmt.Errorf("unknown notification status %q", payload.Status))
	}
	if err != nil {
		return errs.NewGenericError(err)
	}

	if err := s.repo.Update(ctx, txn); err != nil {
		return errs.NewGenericError(err)
	}

	s.logger.Info("Settlement notification applied", map[string]any{
		"txn_reference": txn.TxnReference,
		"status":        txn.Status,
	})
	return nil
}

// callProvider builds and signs the deposit envelope, executes it through
// the gateway and verifies the authenticity of the provider's answer
func (s *Service) callProvider(ctx context.Context, txn *entity.Transaction, request *InitiateRequest) (*entity.DepositResult, error) {
	amount, err := entity.AmountToFloat(txn.Amount)
	if err != nil {
		return nil, errs.NewGenericError(err)
	}

	data := entity.DepositRequestData{
		Username:        s.config.Username,
		Password:        s.config.Password,
		NotificationURL: fmt.Sprintf("%s/payments/%s/notifications", s.config.NotificationURL, txn.TxnReference),
		EndUserID:       strconv.FormatUint(txn.UserID, 10),
		MessageID:       txn.TxnReference,
		Attributes: entity.DepositAttributes{
			Country:    request.Country,
			Locale:     request.Locale,
			Currency:   txn.Currency,
			Amount:     amount,
			Firstname:  request.FirstName,
			Lastname:   request.LastName,
			Email:      request.Email,
			SuccessURL: request.SuccessURL,
			FailURL:    request.FailURL,
		},
	}

	envelopeUUID := uuid.NewString()
	sig, err := s.signer.Sign(entity.MethodDeposit, envelopeUUID, data)
	if err != nil {
		return nil, errs.NewGenericError(err)
	}

	envelope := &entity.Envelope{
		Version: entity.ProtocolVersion,
		Result: &entity.Result{
			UUID:      envelopeUUID,
			Method:    entity.MethodDeposit,
			Signature: sig,
			Data:      data,
		},
	}

	result, err := s.gateway.Deposit(ctx, envelope)
	if err != nil {
		return nil, err
	}

	if !s.signer.Verify(result.Method, result.UUID, result.Data, result.Signature) {
		return nil, errs.NewInvalidResponseError(errs.ErrInvalidSignature)
	}

	return result, nil
}

// decodePayload maps a generic envelope payload onto a typed structure
func decodePayload(data any, target any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

// failTransaction persists the FAILED status with the causing error's code
// and message. This runs for every failure path of InitiatePayment so the
// handling is structurally identical regardless of which layer raised it.
func (s *Service) failTransaction(ctx context.Context, txn *entity.Transaction, cause error) {
	if err := txn.MarkFailed(errs.Code(cause), errs.Message(cause)); err != nil {
		s.logger.Error("Cannot mark transaction failed", map[string]any{
			"txn_reference": txn.TxnReference,
			"status":        txn.Status,
			"error":         err.Error(),
		})
		return
	}

	if err := s.repo.Update(ctx, txn); err != nil {
		s.logger.Error("Failed to persist FAILED status", map[string]any{
			"txn_reference": txn.TxnReference,
			"error":         err.Error(),
		})
		return
	}

	s.logger.Info("Transaction marked FAILED", map[string]any{
		"txn_reference": txn.TxnReference,
		"error_code":    txn.ErrorCode,
		"error_message": txn.ErrorMessage,
	})
}

package entity

import (
	"fmt"

	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
)

// TxnStatus defines the lifecycle status of a payment transaction
type TxnStatus string

// Transaction lifecycle statuses
const (
	StatusCreated   TxnStatus = "CREATED"
	StatusInitiated TxnStatus = "INITIATED"
	StatusPending   TxnStatus = "PENDING"
	StatusSettled   TxnStatus = "SETTLED"
	StatusFailed    TxnStatus = "FAILED"
)

// IsTerminal reports whether no further transition is allowed from this status
func (s TxnStatus) IsTerminal() bool {
	return s == StatusSettled || s == StatusFailed
}

// CanTransitionTo reports whether the lifecycle allows moving to the target
// status. Transitions are forward-only; FAILED is reachable from any
// non-terminal status.
func (s TxnStatus) CanTransitionTo(target TxnStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusFailed {
		return true
	}
	switch s {
	case StatusCreated:
		return target == StatusInitiated
	case StatusInitiated:
		return target == StatusPending
	case StatusPending:
		return target == StatusSettled
	}
	return false
}

// Transaction represents a deposit payment owned by the payment lifecycle.
// TxnReference is minted exactly once at creation and never regenerated.
type Transaction struct {
	ID                           uint64
	UserID                       uint64
	PaymentMethodID              int
	ProviderID                   int
	PaymentTypeID                int
	Amount                       string // decimal string with 2 decimal places
	Currency                     string
	MerchantTransactionReference string
	TxnReference                 string
	ProviderReference            string
	RetryCount                   int
	Status                       TxnStatus
	ErrorCode                    string
	ErrorMessage                 string
}

// NewTransaction creates a transaction in CREATED status with a zero retry count
func NewTransaction(
	txnReference string,
	userID uint64,
	paymentMethodID, providerID, paymentTypeID int,
	amount, currency, merchantTransactionReference string,
) (*Transaction, error) {
	if txnReference == "" {
		return nil, fmt.Errorf("%w: missing transaction reference", errs.ErrInvalidRequest)
	}
	normalized, err := ValidateAmount(amount)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		UserID:                       userID,
		PaymentMethodID:              paymentMethodID,
		ProviderID:                   providerID,
		PaymentTypeID:                paymentTypeID,
		Amount:                       normalized,
		Currency:                     currency,
		MerchantTransactionReference: merchantTransactionReference,
		TxnReference:                 txnReference,
		RetryCount:                   0,
		Status:                       StatusCreated,
	}, nil
}

// transition moves the transaction to the target status, enforcing the state machine
func (t *Transaction) transition(target TxnStatus) error {
	if !t.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s for reference %s",
			errs.ErrInvalidStatusTransition, t.Status, target, t.TxnReference)
	}
	t.Status = target
	return nil
}

// MarkInitiated moves the transaction to INITIATED before the provider call
func (t *Transaction) MarkInitiated() error {
	return t.transition(StatusInitiated)
}

// MarkPending records the provider reference and moves the transaction to PENDING
func (t *Transaction) MarkPending(providerReference string) error {
	if err := t.transition(StatusPending); err != nil {
		return err
	}
	t.ProviderReference = providerReference
	return nil
}

// MarkSettled moves the transaction to its success terminal status
func (t *Transaction) MarkSettled() error {
	return t.transition(StatusSettled)
}

// MarkFailed moves the transaction to FAILED with the causing error's code and message.
// FAILED is reachable from any non-terminal status.
func (t *Transaction) MarkFailed(errorCode, errorMessage string) error {
	if err := t.transition(StatusFailed); err != nil {
		return err
	}
	t.ErrorCode = errorCode
	t.ErrorMessage = errorMessage
	return nil
}

package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
)

// TransactionRepository defines keyed persistence for payment transactions.
// The repository persists byte-for-byte what it is given; transaction
// semantics are owned by the payment lifecycle.
type TransactionRepository interface {
	// Create persists a new transaction record
	Create(ctx context.Context, txn *entity.Transaction) error
	// Update persists the mutable lifecycle fields (status, provider
	// reference, error code and message) keyed by txnReference
	Update(ctx context.Context, txn *entity.Transaction) error
	// GetByReference loads a transaction by its unique reference,
	// returning ErrTransactionNotFound when absent
	GetByReference(ctx context.Context, txnReference string) (*entity.Transaction, error)
}

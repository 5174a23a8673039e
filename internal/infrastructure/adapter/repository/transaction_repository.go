package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-processor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Status identifiers as persisted in the txn_status_id column
var statusToID = map[entity.TxnStatus]int{
	entity.StatusCreated:   1,
	entity.StatusInitiated: 2,
	entity.StatusPending:   3,
	entity.StatusSettled:   4,
	entity.StatusFailed:    5,
}

var idToStatus = map[int]entity.TxnStatus{
	1: entity.StatusCreated,
	2: entity.StatusInitiated,
	3: entity.StatusPending,
	4: entity.StatusSettled,
	5: entity.StatusFailed,
}

// TransactionRepository implements the persistence port using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// entityToModel maps a transaction entity onto its persisted row, field by field
func entityToModel(txn *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:                           txn.ID,
		UserID:                       txn.UserID,
		PaymentMethodID:              txn.PaymentMethodID,
		ProviderID:                   txn.ProviderID,
		PaymentTypeID:                txn.PaymentTypeID,
		TxnStatusID:                  statusToID[txn.Status],
		Amount:                       txn.Amount,
		Currency:                     txn.Currency,
		MerchantTransactionReference: txn.MerchantTransactionReference,
		TxnReference:                 txn.TxnReference,
		ProviderReference:            txn.ProviderReference,
		RetryCount:                   txn.RetryCount,
		ErrorCode:                    txn.ErrorCode,
		ErrorMessage:                 txn.ErrorMessage,
	}
}

// modelToEntity maps a persisted row back onto the transaction entity
func modelToEntity(row *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:                           row.ID,
		UserID:                       row.UserID,
		PaymentMethodID:              row.PaymentMethodID,
		ProviderID:                   row.ProviderID,
		PaymentTypeID:                row.PaymentTypeID,
		Amount:                       row.Amount,
		Currency:                     row.Currency,
		MerchantTransactionReference: row.MerchantTransactionReference,
		TxnReference:                 row.TxnReference,
		ProviderReference:            row.ProviderReference,
		RetryCount:                   row.RetryCount,
		Status:                       idToStatus[row.TxnStatusID],
		ErrorCode:                    row.ErrorCode,
		ErrorMessage:                 row.ErrorMessage,
	}
}

// Create persists a new transaction record
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	r.logger.Debug("Saving transaction", map[string]any{
		"txn_reference": txn.TxnReference,
		"user_id":       txn.UserID,
	})

	row := entityToModel(txn)
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		r.logger.Error("Failed to save transaction", map[string]any{
			"txn_reference": txn.TxnReference,
			"error":         result.Error.Error(),
		})
		return fmt.Errorf("saving transaction: %w", result.Error)
	}

	txn.ID = row.ID
	r.logger.Info("Transaction saved", map[string]any{
		"txn_reference": txn.TxnReference,
	})
	return nil
}

// Update persists the mutable lifecycle fields keyed by txnReference
func (r *TransactionRepository) Update(ctx context.Context, txn *entity.Transaction) error {
	r.logger.Debug("Updating transaction", map[string]any{
		"txn_reference": txn.TxnReference,
		"status":        txn.Status,
	})

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("txn_reference = ?", txn.TxnReference).
		Updates(map[string]any{
			"txn_status_id":      statusToID[txn.Status],
			"provider_reference": txn.ProviderReference,
			"error_code":         txn.ErrorCode,
			"error_message":      txn.ErrorMessage,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update transaction", map[string]any{
			"txn_reference": txn.TxnReference,
			"error":         result.Error.Error(),
		})
		return fmt.Errorf("updating transaction: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during update", map[string]any{
			"txn_reference": txn.TxnReference,
		})
		return errs.ErrTransactionNotFound
	}

	return nil
}

// GetByReference loads a transaction by its unique reference
func (r *TransactionRepository) GetByReference(ctx context.Context, txnReference string) (*entity.Transaction, error) {
	var row model.Transaction
	result := r.db.WithContext(ctx).
		Where("txn_reference = ?", txnReference).
		First(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to load transaction", map[string]any{
			"txn_reference": txnReference,
			"error":         result.Error.Error(),
		})
		return nil, fmt.Errorf("loading transaction: %w", result.Error)
	}

	return modelToEntity(&row), nil
}

package model

import "time"

// Transaction represents the persisted row for a payment transaction.
// The status is stored as a numeric identifier (TxnStatusID); the mapping to
// lifecycle status names lives in the repository layer.
type Transaction struct {
	ID                           uint64 `gorm:"primaryKey;autoIncrement"`
	UserID                       uint64 `gorm:"not null;index"`
	PaymentMethodID              int    `gorm:"not null"`
	ProviderID                   int    `gorm:"not null"`
	PaymentTypeID                int    `gorm:"not null"`
	TxnStatusID                  int    `gorm:"not null"`
	Amount                       string `gorm:"not null;size:50"`
	Currency                     string `gorm:"not null;size:3"`
	MerchantTransactionReference string `gorm:"size:255"`
	TxnReference                 string `gorm:"uniqueIndex;not null;size:255"`
	ProviderReference            string `gorm:"size:255"`
	RetryCount                   int    `gorm:"not null;default:0"`
	ErrorCode                    string `gorm:"size:50"`
	ErrorMessage                 string `gorm:"type:text"`
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

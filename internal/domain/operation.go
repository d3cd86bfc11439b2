package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation Model. AmountOriginal is denominated in CurrencyCode (or the
// wallet's base currency when CurrencyCode is nil); AmountBase is the value
// converted into the wallet's base currency at the operation date.
type Operation struct {
	ID             uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	WalletID       uint            `gorm:"not null;index" json:"wallet_id"`           // Foreign key to Wallet
	TypeID         uint            `gorm:"not null;index" json:"type_id"`             // Foreign key to OperationType
	AmountOriginal decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_original"`
	CurrencyCode   *string         `gorm:"size:3" json:"currency_code,omitempty"` // Nil means wallet base currency
	AmountBase     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_base"`
	Date           time.Time       `gorm:"not null;index" json:"date"` // Transaction date (day precision)
	Note           string          `gorm:"size:256" json:"note,omitempty"`
	IsDeleted      bool            `gorm:"not null;default:false;index" json:"-"` // Soft-delete flag
	CreatedAt      time.Time       `json:"created_at"`
}

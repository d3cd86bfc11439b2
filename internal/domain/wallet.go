package domain

import "time"

// Wallet Model
type Wallet struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	UserID       uint      `gorm:"not null;index" json:"user_id"`         // Foreign key to User
	Name         string    `gorm:"size:64;not null" json:"name"`          // Unique per user among non-deleted wallets
	CurrencyCode string    `gorm:"size:3;not null" json:"currency_code"`  // Base currency, references Currency.Code
	IsDeleted    bool      `gorm:"not null;default:false;index" json:"-"` // Soft-delete flag
	CreatedAt    time.Time `json:"created_at"`
}

package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Username  string    `gorm:"type:varchar(32) COLLATE utf8mb4_bin;not null" json:"username"` // Unique among non-deleted users, case-sensitive
	Password  string    `gorm:"not null" json:"-"`                     // Bcrypt hash, never serialized
	IsDeleted bool      `gorm:"not null;default:false;index" json:"-"` // Soft-delete flag
	CreatedAt time.Time `json:"created_at"`
}

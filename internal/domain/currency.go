package domain

// Currency is a reference entity keyed by ISO 4217 code, seeded at migration
// time and optionally refreshed from the exchange-rate provider's catalog.
type Currency struct {
	Code string `gorm:"primaryKey;size:3" json:"code"` // ISO code, e.g. "USD"
	Name string `gorm:"size:64;not null" json:"name"`  // e.g. "US Dollar"
}

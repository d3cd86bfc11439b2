package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/domain"
)

// seedCurrencies is the initial ISO 4217 catalog. The catalog can later be
// refreshed from the rate provider via the currencies API.
var seedCurrencies = []domain.Currency{
	{Code: "AUD", Name: "Australian Dollar"},
	{Code: "BGN", Name: "Bulgarian Lev"},
	{Code: "BRL", Name: "Brazilian Real"},
	{Code: "CAD", Name: "Canadian Dollar"},
	{Code: "CHF", Name: "Swiss Franc"},
	{Code: "CNY", Name: "Chinese Renminbi Yuan"},
	{Code: "CZK", Name: "Czech Koruna"},
	{Code: "DKK", Name: "Danish Krone"},
	{Code: "EUR", Name: "Euro"},
	{Code: "GBP", Name: "British Pound"},
	{Code: "HKD", Name: "Hong Kong Dollar"},
	{Code: "HUF", Name: "Hungarian Forint"},
	{Code: "IDR", Name: "Indonesian Rupiah"},
	{Code: "ILS", Name: "Israeli New Sheqel"},
	{Code: "INR", Name: "Indian Rupee"},
	{Code: "ISK", Name: "Icelandic Krona"},
	{Code: "JPY", Name: "Japanese Yen"},
	{Code: "KRW", Name: "South Korean Won"},
	{Code: "MXN", Name: "Mexican Peso"},
	{Code: "MYR", Name: "Malaysian Ringgit"},
	{Code: "NOK", Name: "Norwegian Krone"},
	{Code: "NZD", Name: "New Zealand Dollar"},
	{Code: "PHP", Name: "Philippine Peso"},
	{Code: "PLN", Name: "Polish Zloty"},
	{Code: "RON", Name: "Romanian Leu"},
	{Code: "SEK", Name: "Swedish Krona"},
	{Code: "SGD", Name: "Singapore Dollar"},
	{Code: "THB", Name: "Thai Baht"},
	{Code: "TRY", Name: "Turkish Lira"},
	{Code: "USD", Name: "United States Dollar"},
	{Code: "ZAR", Name: "South African Rand"},
}

// Migrate performs automatic migration for the database schema and seeds the
// currency catalog.
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Wallet{},
		&domain.Currency{},
		&domain.OperationType{},
		&domain.Operation{},
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	// Seed currencies, keeping names of already-present codes untouched
	err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seedCurrencies).Error
	if err != nil {
		logrus.Fatalf("currency seed failed: %v", err)
	}
	logrus.Info("Migration completed.")
}

package main

import (
	"fintrack/internal/config"
	"fintrack/internal/db"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig()
	db.Migrate(cfg.DSN())
}

// Package database handles database connections and schema inspection.
//
// It wraps GORM and selects the dialector from configuration: MySQL (default),
// PostgreSQL, or SQLite (used for local runs and tests).
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the variants feature verify, before any drift is
// committed, that the catalog tables carry the columns the store writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "product_variants", []string{"sku", "title"})
package database

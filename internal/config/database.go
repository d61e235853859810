package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/brexcellence/intranet-server/internal/schema"
	"github.com/brexcellence/intranet-server/internal/sheets"
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sheet_rows (
			sheet_name VARCHAR(255) NOT NULL,
			row_index BIGINT NOT NULL,
			cells JSONB NOT NULL,
			PRIMARY KEY (sheet_name, row_index)
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sheet_rows_name ON sheet_rows(sheet_name)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}

// SeedSheets creates the header row of every known sheet that does not
// exist yet. Existing sheets are left untouched.
func SeedSheets(ctx context.Context, store sheets.Store) error {
	for _, def := range schema.DefaultSheets() {
		existing, err := store.Read(ctx, def.Name)
		if err != nil {
			return fmt.Errorf("failed to read sheet %q: %w", def.Name, err)
		}
		if existing != nil {
			continue
		}
		if err := store.CreateSheet(ctx, def.Name, def.Headers); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", def.Name, err)
		}
	}
	return nil
}

package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	productdomain "github.com/smallbiznis/stockroom/internal/product/domain"
	referencedomain "github.com/smallbiznis/stockroom/internal/reference/domain"
	"gorm.io/gorm"
)

// This migration package makes Stockroom usable out of the box: the
// inventory schema is created automatically on startup. Postgres uses
// versioned SQL files; sqlite and mysql fall back to schema sync because
// golang-migrate's sqlite driver needs cgo.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// SyncSchema creates or updates the inventory tables through gorm's
// schema sync. Used for sqlite and mysql, where the SQL migration files
// do not apply.
func SyncSchema(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	return conn.AutoMigrate(
		&referencedomain.Category{},
		&referencedomain.Supplier{},
		&referencedomain.Location{},
		&productdomain.Product{},
	)
}

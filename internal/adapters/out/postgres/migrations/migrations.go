// Package migrations applies the embedded SQL schema with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

// Index names used to tell which uniqueness rule a conflicting insert broke.
const (
	CarActiveOrderIndex  = "orders_car_active_uidx"
	ClientOpenOrderIndex = "orders_client_open_uidx"
)

const (
	migrationsTable       = "schema_migrations"
	migrationsSourceName  = "iofs"
	migrationsDriverName  = "postgres"
	migrationsDirInsideFS = "sql"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// Up brings the schema at dsn to the latest version. It is a no-op when the
// schema is already current.
func Up(dsn string) (err error) {
	m, closeFn, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeFn())
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down reverts every migration. Used by tests that need an empty database.
func Down(dsn string) (err error) {
	m, closeFn, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeFn())
	}()

	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revert migrations: %w", err)
	}
	return nil
}

func newMigrate(dsn string) (*migrate.Migrate, func() error, error) {
	source, err := iofs.New(schemaFS, migrationsDirInsideFS)
	if err != nil {
		return nil, nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open migrations connection: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create migrations driver: %w", err)
	}

	m, err := migrate.NewWithInstance(migrationsSourceName, source, migrationsDriverName, driver)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create migrator: %w", err)
	}

	closeFn := func() error {
		srcErr, dbErr := m.Close()
		return errors.Join(srcErr, dbErr)
	}
	return m, closeFn, nil
}

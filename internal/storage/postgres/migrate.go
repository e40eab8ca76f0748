package postgres

import (
	"errors"
	"fmt"

	"github.com/IlyasAtabaev731/wealth-tracker/migrations"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const migrationsTable = "migrations"

// Migrate applies the embedded schema. The migrate instance is not closed
// because its driver would close the shared *sql.DB.
func (s *Storage) Migrate() error {
	const op = "storage.postgres.Migrate"

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	driver, err := migratepg.WithInstance(s.db, &migratepg.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			s.logger.Debug("No migrations to apply")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("Migrations applied successfully")

	return nil
}

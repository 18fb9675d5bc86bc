package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateUp applies all pending migrations. Schema files are embedded so
// the binary is self contained.
func MigrateUp(dbURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")

	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	// the migrate pgx/v5 driver registers itself under the pgx5 scheme
	url := strings.Replace(dbURL, "postgres://", "pgx5://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", src, url)

	if err != nil {
		return fmt.Errorf("init migrator: %w", err)
	}

	defer func() {
		sourceErr, dbErr := m.Close()
		_ = sourceErr
		_ = dbErr
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}

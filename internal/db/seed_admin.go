package db

import (
	"context"
	"errors"
	"time"

	"github.com/gatherly/eventsapi/internal/config"
	"github.com/gatherly/eventsapi/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser creates the configured admin account on first boot.
// No-op when the seed credentials are not configured or the user exists.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, is_host, is_admin, created_at, updated_at)
		VALUES ($1,$2,$3,$4,TRUE,TRUE,$5,$6)
		`,
		uuid.NewString(), cfg.AdminName, cfg.AdminEmail, hash, now, now,
	)

	return err
}

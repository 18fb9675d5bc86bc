package postgres

import (
	"context"
	"errors"

	"github.com/gatherly/eventsapi/internal/domain/user"
	"github.com/gatherly/eventsapi/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, is_host, is_admin, created_at, updated_at`

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation (code 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanUser(row pgx.Row, u *user.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsHost,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// Create inserts a new user. A duplicate email surfaces the unique
// constraint as user.ErrEmailTaken.
func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error) {
	u := user.NewFromCreateRequest(req, passwordHash)

	err := r.observe("users.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO users (`+userColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.IsHost, u.IsAdmin, u.CreatedAt, u.UpdatedAt,
		)
		return execErr
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		return scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		return scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`, email), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, id string, req user.UpdateUserRequest, passwordHash string) (user.User, error) {
	var u user.User

	err := r.observe("users.update", func() error {
		return scanUser(r.pool.QueryRow(ctx,
			`UPDATE users
				SET name = $2,
					email = $3,
					password_hash = $4,
					is_host = $5,
					is_admin = $6,
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+userColumns,
			id, req.Name, req.Email, passwordHash, req.IsHost, req.IsAdmin,
		), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}

	return u, nil
}

// Delete removes the user and returns the removed record.
func (r *UsersRepo) Delete(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.delete", func() error {
		return scanUser(r.pool.QueryRow(ctx,
			`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

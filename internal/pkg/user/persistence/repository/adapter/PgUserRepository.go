package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	user "go-parley/internal/pkg/user/domain"
)

const uniqueViolation = "23505"

// PgUserRepository persists accounts in Postgres via a pgx pool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, a user.Account) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgUserRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, session_version, verified, created_at)
		VALUES ($1, $2, $3, 0, $4, $5)
		RETURNING id::text
	`, a.Username, a.Email, a.PasswordHash, a.Verified, a.CreatedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return "", user.ErrUsernameTaken
			case "users_email_key":
				return "", user.ErrEmailTaken
			}
			return "", user.ErrUsernameTaken
		}
		return "", err
	}
	return id, nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*user.Account, error) {
	return r.findBy(ctx, "id = $1::uuid", id)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*user.Account, error) {
	return r.findBy(ctx, "email = $1", email)
}

func (r *PgUserRepository) findBy(ctx context.Context, where string, arg any) (*user.Account, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var a user.Account
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, username, email, password_hash, session_version, verified, created_at
		FROM users
		WHERE `+where,
		arg,
	).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.SessionVersion, &a.Verified, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgUserRepository) SearchByUsername(ctx context.Context, q, excludeID string) ([]user.Account, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, username, email
		FROM users
		WHERE username ILIKE '%' || $1 || '%' AND id <> $2::uuid
		ORDER BY username
	`, q, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []user.Account
	for rows.Next() {
		var a user.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Email); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *PgUserRepository) BumpSessionVersion(ctx context.Context, id string) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgUserRepository: nil pool")
	}
	var version int
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET session_version = session_version + 1
		WHERE id = $1::uuid
		RETURNING session_version
	`, id).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, user.ErrNotFound
	}
	return version, err
}

func (r *PgUserRepository) Usernames(ctx context.Context, ids []string) (map[string]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, username FROM users WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"banking-service/internal/domain"
	"banking-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, role, email, full_name, created_at
		FROM users
		WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Email, &u.FullName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w: %w", username, xerrors.ErrStore, err)
	}
	return &u, nil
}

// InsertIfAbsent creates the user unless the username is already taken.
// Used by the seeder; re-running startup is a no-op.
func (r *UserRepository) InsertIfAbsent(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (username, password, role, email, full_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO NOTHING`,
		u.Username, u.Password, u.Role, u.Email, u.FullName)
	if err != nil {
		return fmt.Errorf("insert user %s: %w: %w", u.Username, xerrors.ErrStore, err)
	}
	return nil
}

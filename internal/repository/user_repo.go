package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/t-ecosystem/market_api/internal/models"
)

// UserRepository handles data access for storefront accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	const q = `
        INSERT INTO users (id, email, password_hash, display_name, photo_url, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,NOW(),NOW())`

	_, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.DisplayName, u.PhotoURL)
	return err
}

// GetByEmail returns the user with the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE email = $1`

	var u models.User
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns the user with the given id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE id = $1`

	var u models.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

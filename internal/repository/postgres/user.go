package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, name, email, password_hash, avatar_key, created_at, updated_at`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AvatarKey,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", storeError(err))
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.AvatarKey,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", storeError(err))
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO users (id, name, email, password_hash, avatar_key, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + userColumns

	var saved model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.AvatarKey, user.CreatedAt, user.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.Email, &saved.PasswordHash, &saved.AvatarKey,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return model.User{}, model.ErrDuplicateEmail
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", storeError(err))
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET name = $2, email = $3, avatar_key = $4, updated_at = $5
			  WHERE id = $1
			  RETURNING ` + userColumns

	var saved model.User
	err := r.db.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.AvatarKey, user.UpdatedAt).Scan(
		&saved.ID, &saved.Name, &saved.Email, &saved.PasswordHash, &saved.AvatarKey,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return model.User{}, model.ErrDuplicateEmail
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", storeError(err))
	}

	return saved, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte, updatedAt time.Time) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, passwordHash, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", storeError(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

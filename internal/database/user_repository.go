package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/heather92115/palabras/internal/store"
	"github.com/heather92115/palabras/pkg/models"
)

const userColumns = `id, name, code, num_known, num_correct, num_incorrect, total_percentage,
	smallest_vocab, updated`

// UserRepository handles database operations for users and their overall progress
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user's progress by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.UserProgress, error) {
	var p models.UserProgress
	err := r.db.GetContext(ctx, &p, r.db.Rebind("SELECT "+userColumns+" FROM user_progress WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("user", "get", id, store.ErrUserNotFound)
	}
	if err != nil {
		return nil, store.NewStoreError("user", "get", id, err)
	}
	return &p, nil
}

// GetByCode returns the user owning an access code
func (r *UserRepository) GetByCode(ctx context.Context, code string) (*models.UserProgress, error) {
	var p models.UserProgress
	err := r.db.GetContext(ctx, &p, r.db.Rebind("SELECT "+userColumns+" FROM user_progress WHERE code = ?"), code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("user", "get by code", 0, store.ErrUserNotFound)
	}
	if err != nil {
		return nil, store.NewStoreError("user", "get by code", 0, err)
	}
	return &p, nil
}

// List returns all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]models.UserProgress, error) {
	var users []models.UserProgress
	if err := r.db.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM user_progress ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, p *models.UserProgress) error {
	if p.Updated.IsZero() {
		p.Updated = time.Now().UTC()
	}

	id, err := insertReturningID(ctx, r.db, `
		INSERT INTO user_progress (name, code, num_known, num_correct, num_incorrect, total_percentage,
			smallest_vocab, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name,
		p.Code,
		p.NumKnown,
		p.NumCorrect,
		p.NumIncorrect,
		p.TotalPercentage,
		p.SmallestVocab,
		p.Updated,
	)
	if err != nil {
		return store.NewStoreError("user", "create", 0, err)
	}

	p.ID = id
	return nil
}

// Save writes back a user's counters. The access code is never changed here.
func (r *UserRepository) Save(ctx context.Context, p *models.UserProgress) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE user_progress
		SET name = ?, num_known = ?, num_correct = ?, num_incorrect = ?, total_percentage = ?,
			smallest_vocab = ?, updated = ?
		WHERE id = ?`),
		p.Name,
		p.NumKnown,
		p.NumCorrect,
		p.NumIncorrect,
		p.TotalPercentage,
		p.SmallestVocab,
		p.Updated,
		p.ID,
	)
	return checkUpdated("user", p.ID, result, err)
}

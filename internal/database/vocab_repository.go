package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/heather92115/palabras/internal/store"
	"github.com/heather92115/palabras/pkg/models"
)

const vocabColumns = "id, learning_lang, first_lang, alternatives, skill, infinitive, pos, hint, created"

// VocabRepository handles database operations for vocab
type VocabRepository struct {
	db *sqlx.DB
}

// NewVocabRepository creates a new repository instance
func NewVocabRepository(db *sqlx.DB) *VocabRepository {
	return &VocabRepository{db: db}
}

// GetByID returns a vocab by ID
func (r *VocabRepository) GetByID(ctx context.Context, id int64) (*models.Vocab, error) {
	var vocab models.Vocab
	err := r.db.GetContext(ctx, &vocab, r.db.Rebind("SELECT "+vocabColumns+" FROM vocab WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("vocab", "get", id, store.ErrVocabNotFound)
	}
	if err != nil {
		return nil, store.NewStoreError("vocab", "get", id, err)
	}
	return &vocab, nil
}

// FindByLearning returns the vocab with the exact learning text, or nil
func (r *VocabRepository) FindByLearning(ctx context.Context, learning string) (*models.Vocab, error) {
	var vocab models.Vocab
	err := r.db.GetContext(ctx, &vocab,
		r.db.Rebind("SELECT "+vocabColumns+" FROM vocab WHERE learning_lang = ?"), learning)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vocab by learning %q: %w", learning, err)
	}
	return &vocab, nil
}

// FindByAlternative returns the first vocab listing the text among its alternatives, or nil
func (r *VocabRepository) FindByAlternative(ctx context.Context, alternative string) (*models.Vocab, error) {
	like := "LIKE"
	if r.db.DriverName() == DriverPostgres {
		like = "ILIKE"
	}

	var candidates []models.Vocab
	query := "SELECT " + vocabColumns + " FROM vocab WHERE alternatives " + like + " ? ORDER BY id"
	if err := r.db.SelectContext(ctx, &candidates, r.db.Rebind(query), "%"+alternative+"%"); err != nil {
		return nil, fmt.Errorf("failed to find vocab by alternative %q: %w", alternative, err)
	}

	// LIKE also matches substrings of longer alternatives
	want := strings.ToLower(strings.TrimSpace(alternative))
	for i := range candidates {
		for _, alt := range strings.Split(candidates[i].Alternatives, ",") {
			if strings.ToLower(strings.TrimSpace(alt)) == want {
				return &candidates[i], nil
			}
		}
	}
	return nil, nil
}

// Create inserts a new vocab
func (r *VocabRepository) Create(ctx context.Context, vocab *models.Vocab) error {
	if vocab.Created.IsZero() {
		vocab.Created = time.Now().UTC()
	}

	id, err := insertReturningID(ctx, r.db, `
		INSERT INTO vocab (learning_lang, first_lang, alternatives, skill, infinitive, pos, hint, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		vocab.LearningLang,
		vocab.FirstLang,
		vocab.Alternatives,
		vocab.Skill,
		vocab.Infinitive,
		vocab.Pos,
		vocab.Hint,
		vocab.Created,
	)
	if err != nil {
		return store.NewStoreError("vocab", "create", 0, fmt.Errorf("%q: %w", vocab.LearningLang, err))
	}

	vocab.ID = id
	return nil
}

// Update modifies an existing vocab
func (r *VocabRepository) Update(ctx context.Context, vocab *models.Vocab) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE vocab
		SET learning_lang = ?, first_lang = ?, alternatives = ?, skill = ?, infinitive = ?, pos = ?, hint = ?
		WHERE id = ?`),
		vocab.LearningLang,
		vocab.FirstLang,
		vocab.Alternatives,
		vocab.Skill,
		vocab.Infinitive,
		vocab.Pos,
		vocab.Hint,
		vocab.ID,
	)
	return checkUpdated("vocab", vocab.ID, result, err)
}

// ListEmptyFirstLang returns vocab missing a first language translation
func (r *VocabRepository) ListEmptyFirstLang(ctx context.Context, limit int) ([]models.Vocab, error) {
	var list []models.Vocab
	err := r.db.SelectContext(ctx, &list,
		r.db.Rebind("SELECT "+vocabColumns+" FROM vocab WHERE first_lang = '' ORDER BY id LIMIT ?"), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocab without first language: %w", err)
	}
	return list, nil
}

// checkUpdated maps write errors and zero affected rows to store errors
func checkUpdated(entity string, id int64, result sql.Result, err error) error {
	if err != nil {
		return store.NewStoreError(entity, "update", id, fmt.Errorf("%w: %v", store.ErrUpdateFailed, err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError(entity, "update", id, fmt.Errorf("%w: %v", store.ErrUpdateFailed, err))
	}
	if n == 0 {
		return store.NewStoreError(entity, "update", id, fmt.Errorf("%w: no rows affected", store.ErrUpdateFailed))
	}
	return nil
}

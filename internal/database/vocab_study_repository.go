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

const vocabStudyColumns = `id, vocab_id, user_id, attempts, correct_attempts, percentage_correct,
	last_change, last_tested, well_known, user_notes, created`

// VocabStudyRepository handles database operations for per user vocab progress
type VocabStudyRepository struct {
	db *sqlx.DB
}

// NewVocabStudyRepository creates a new repository instance
func NewVocabStudyRepository(db *sqlx.DB) *VocabStudyRepository {
	return &VocabStudyRepository{db: db}
}

// GetByID returns a study record by ID
func (r *VocabStudyRepository) GetByID(ctx context.Context, id int64) (*models.VocabStudy, error) {
	var vs models.VocabStudy
	err := r.db.GetContext(ctx, &vs, r.db.Rebind("SELECT "+vocabStudyColumns+" FROM vocab_study WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("vocab study", "get", id, store.ErrVocabStudyNotFound)
	}
	if err != nil {
		return nil, store.NewStoreError("vocab study", "get", id, err)
	}
	return &vs, nil
}

// FindByVocabAndUser returns the user's record for a vocab, or nil
func (r *VocabStudyRepository) FindByVocabAndUser(ctx context.Context, vocabID, userID int64) (*models.VocabStudy, error) {
	var vs models.VocabStudy
	err := r.db.GetContext(ctx, &vs,
		r.db.Rebind("SELECT "+vocabStudyColumns+" FROM vocab_study WHERE vocab_id = ? AND user_id = ?"),
		vocabID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vocab study for vocab %d user %d: %w", vocabID, userID, err)
	}
	return &vs, nil
}

// studySetRow is one row of the study set join
type studySetRow struct {
	ID                int64      `db:"id"`
	VocabID           int64      `db:"vocab_id"`
	UserID            int64      `db:"user_id"`
	Attempts          int        `db:"attempts"`
	CorrectAttempts   int        `db:"correct_attempts"`
	PercentageCorrect *float64   `db:"percentage_correct"`
	LastChange        *float64   `db:"last_change"`
	LastTested        *time.Time `db:"last_tested"`
	WellKnown         bool       `db:"well_known"`
	UserNotes         string     `db:"user_notes"`
	Created           time.Time  `db:"created"`
	LearningLang      string     `db:"learning_lang"`
	FirstLang         string     `db:"first_lang"`
	Alternatives      string     `db:"alternatives"`
	Skill             string     `db:"skill"`
	Infinitive        string     `db:"infinitive"`
	Pos               string     `db:"pos"`
	Hint              string     `db:"hint"`
	VocabCreated      time.Time  `db:"vocab_created"`
}

// GetStudySet returns all study records of the user with their vocab, in id order
func (r *VocabStudyRepository) GetStudySet(ctx context.Context, userID int64) ([]models.StudyPair, error) {
	var rows []studySetRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT s.id, s.vocab_id, s.user_id, s.attempts, s.correct_attempts, s.percentage_correct,
			s.last_change, s.last_tested, s.well_known, s.user_notes, s.created,
			v.learning_lang, v.first_lang, v.alternatives, v.skill, v.infinitive, v.pos, v.hint,
			v.created AS vocab_created
		FROM vocab_study s
		INNER JOIN vocab v ON v.id = s.vocab_id
		WHERE s.user_id = ?
		ORDER BY s.id`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study set for user %d: %w", userID, err)
	}

	pairs := make([]models.StudyPair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, models.StudyPair{
			Study: models.VocabStudy{
				ID:                row.ID,
				VocabID:           row.VocabID,
				UserID:            row.UserID,
				Attempts:          row.Attempts,
				CorrectAttempts:   row.CorrectAttempts,
				PercentageCorrect: row.PercentageCorrect,
				LastChange:        row.LastChange,
				LastTested:        row.LastTested,
				WellKnown:         row.WellKnown,
				UserNotes:         row.UserNotes,
				Created:           row.Created,
			},
			Vocab: models.Vocab{
				ID:           row.VocabID,
				LearningLang: row.LearningLang,
				FirstLang:    row.FirstLang,
				Alternatives: row.Alternatives,
				Skill:        row.Skill,
				Infinitive:   row.Infinitive,
				Pos:          row.Pos,
				Hint:         row.Hint,
				Created:      row.VocabCreated,
			},
		})
	}
	return pairs, nil
}

// Create inserts a new study record
func (r *VocabStudyRepository) Create(ctx context.Context, vs *models.VocabStudy) error {
	if vs.Created.IsZero() {
		vs.Created = time.Now().UTC()
	}

	id, err := insertReturningID(ctx, r.db, `
		INSERT INTO vocab_study (vocab_id, user_id, attempts, correct_attempts, percentage_correct,
			last_change, last_tested, well_known, user_notes, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vs.VocabID,
		vs.UserID,
		vs.Attempts,
		vs.CorrectAttempts,
		vs.PercentageCorrect,
		vs.LastChange,
		vs.LastTested,
		vs.WellKnown,
		vs.UserNotes,
		vs.Created,
	)
	if err != nil {
		return store.NewStoreError("vocab study", "create", 0,
			fmt.Errorf("vocab %d user %d: %w", vs.VocabID, vs.UserID, err))
	}

	vs.ID = id
	return nil
}

// Save writes back the mutable fields of an existing study record
func (r *VocabStudyRepository) Save(ctx context.Context, vs *models.VocabStudy) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE vocab_study
		SET attempts = ?, correct_attempts = ?, percentage_correct = ?, last_change = ?,
			last_tested = ?, well_known = ?, user_notes = ?
		WHERE id = ?`),
		vs.Attempts,
		vs.CorrectAttempts,
		vs.PercentageCorrect,
		vs.LastChange,
		vs.LastTested,
		vs.WellKnown,
		vs.UserNotes,
		vs.ID,
	)
	return checkUpdated("vocab study", vs.ID, result, err)
}

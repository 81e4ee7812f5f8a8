// Package store declares the persistence capabilities the study engine and
// importers depend on. Implementations live in internal/database.
package store

import (
	"context"

	"github.com/heather92115/palabras/pkg/models"
)

// VocabReader loads a single vocab.
type VocabReader interface {
	// GetByID returns ErrVocabNotFound when no vocab has the id.
	GetByID(ctx context.Context, id int64) (*models.Vocab, error)
}

// VocabStore is the full vocab capability used by the importers.
type VocabStore interface {
	VocabReader

	// FindByLearning returns nil, nil when nothing matches.
	FindByLearning(ctx context.Context, learning string) (*models.Vocab, error)
	// FindByAlternative returns the first vocab whose alternatives contain the text, or nil.
	FindByAlternative(ctx context.Context, alternative string) (*models.Vocab, error)
	Create(ctx context.Context, vocab *models.Vocab) error
	Update(ctx context.Context, vocab *models.Vocab) error
	// ListEmptyFirstLang returns vocab lacking a first language translation.
	ListEmptyFirstLang(ctx context.Context, limit int) ([]models.Vocab, error)
}

// VocabStudyStore is what grading and batch selection need from study records.
type VocabStudyStore interface {
	// GetByID returns ErrVocabStudyNotFound when no record has the id.
	GetByID(ctx context.Context, id int64) (*models.VocabStudy, error)
	// GetStudySet returns every study record of the user joined with its vocab.
	GetStudySet(ctx context.Context, userID int64) ([]models.StudyPair, error)
	// Save writes back the mutable fields of an existing record.
	Save(ctx context.Context, study *models.VocabStudy) error
}

// VocabStudyWriter creates study records during imports.
type VocabStudyWriter interface {
	// FindByVocabAndUser returns nil, nil when the user has no record for the vocab.
	FindByVocabAndUser(ctx context.Context, vocabID, userID int64) (*models.VocabStudy, error)
	Create(ctx context.Context, study *models.VocabStudy) error
}

// UserProgressStore reads and writes per-user aggregates.
type UserProgressStore interface {
	// GetByID returns ErrUserNotFound when the user does not exist.
	GetByID(ctx context.Context, id int64) (*models.UserProgress, error)
	Save(ctx context.Context, progress *models.UserProgress) error
}

// UserStore adds user management on top of UserProgressStore.
type UserStore interface {
	UserProgressStore

	Create(ctx context.Context, progress *models.UserProgress) error
	// GetByCode returns ErrUserNotFound when no user has the access code.
	GetByCode(ctx context.Context, code string) (*models.UserProgress, error)
	List(ctx context.Context) ([]models.UserProgress, error)
}

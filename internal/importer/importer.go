// Package importer loads vocabulary into the store from Duolingo exports,
// spreadsheets and translation files, and exports vocab that still needs a
// first language translation.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heather92115/palabras/internal/store"
	"github.com/heather92115/palabras/internal/study"
	"github.com/heather92115/palabras/pkg/models"
)

// Result holds the result of an import operation
type Result struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	StudiesCreated int
	Errors         []string
}

// Importer writes imported vocab and the importing user's study records
type Importer struct {
	vocab   store.VocabStore
	studies store.VocabStudyWriter
	users   store.UserProgressStore
	logger  *slog.Logger
}

// New creates an Importer. A nil logger uses slog.Default().
func New(vocab store.VocabStore, studies store.VocabStudyWriter, users store.UserProgressStore, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		vocab:   vocab,
		studies: studies,
		users:   users,
		logger:  logger.With(slog.String("component", "importer")),
	}
}

// verifyUser fails when the user id does not exist
func (im *Importer) verifyUser(ctx context.Context, userID int64) error {
	if _, err := im.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to verify user %d: %w", userID, err)
	}
	return nil
}

// ensureStudy creates the user's study record for a vocab when missing.
// It reports whether a record was created.
func (im *Importer) ensureStudy(ctx context.Context, vocabID, userID int64, correctness *float64) (bool, error) {
	existing, err := im.studies.FindByVocabAndUser(ctx, vocabID, userID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	vs := &models.VocabStudy{VocabID: vocabID, UserID: userID}
	if correctness != nil {
		c := *correctness
		vs.PercentageCorrect = &c
		vs.WellKnown = study.IsWellKnown(c)
	}
	if err := im.studies.Create(ctx, vs); err != nil {
		return false, err
	}
	return true, nil
}

// Package study scores answers, tracks per vocab correctness and picks the
// next vocab a user should practice.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heather92115/palabras/internal/store"
	"github.com/heather92115/palabras/pkg/models"
)

// Observer is notified about served batches and graded answers.
type Observer interface {
	BatchServed(size int)
	AttemptGraded(score int, wellKnown bool)
}

// Result is the full outcome of grading one answer.
type Result struct {
	Score    int
	Message  string
	Study    models.VocabStudy
	Progress *models.UserProgress // nil when the aggregate update failed
}

// Service grades answers and selects study batches. It holds no cached state
// and is safe for concurrent use.
type Service struct {
	vocab    store.VocabReader
	studies  store.VocabStudyStore
	progress store.UserProgressStore
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
	locks    *keyedMutex
}

// Option configures a Service.
type Option func(*Service)

// WithObserver registers an observer for grading events.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for last tested and updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a study service. It panics if a store is nil.
func NewService(
	vocab store.VocabReader,
	studies store.VocabStudyStore,
	progress store.UserProgressStore,
	opts ...Option,
) *Service {
	if vocab == nil {
		panic("vocab store cannot be nil")
	}
	if studies == nil {
		panic("vocab study store cannot be nil")
	}
	if progress == nil {
		panic("user progress store cannot be nil")
	}

	s := &Service{
		vocab:    vocab,
		studies:  studies,
		progress: progress,
		logger:   slog.Default(),
		now:      time.Now,
		locks:    newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "study_service"))

	return s
}

// GetBatch returns the next vocab the user should translate, at most limit pairs.
func (s *Service) GetBatch(ctx context.Context, userID int64, limit int) ([]models.StudyPair, error) {
	if limit <= 0 {
		return []models.StudyPair{}, nil
	}

	pairs, err := s.studies.GetStudySet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study set for user %d: %w", userID, err)
	}

	batch := SelectBatch(pairs, limit)
	if s.observer != nil {
		s.observer.BatchServed(len(batch))
	}
	s.logger.DebugContext(ctx, "study batch selected",
		slog.Int64("user_id", userID),
		slog.Int("available", len(pairs)),
		slog.Int("selected", len(batch)))

	return batch, nil
}

// GradeAttempt scores the answer, records it and returns the message for the user.
func (s *Service) GradeAttempt(ctx context.Context, vocabID, studyID int64, entered string) (string, error) {
	res, err := s.GradeAttemptDetailed(ctx, vocabID, studyID, entered)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// GradeAttemptDetailed is GradeAttempt returning the score and updated records.
//
// The study record is written before the user's progress. If the progress
// write fails the study update is kept and the error is returned.
func (s *Service) GradeAttemptDetailed(ctx context.Context, vocabID, studyID int64, entered string) (*Result, error) {
	vocab, err := s.vocab.GetByID(ctx, vocabID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocab %d: %w", vocabID, err)
	}

	score := Score(vocab.LearningLang, vocab.Alternatives, entered)

	updated, err := s.recordScore(ctx, studyID, score)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Score:   score,
		Message: OutcomeMessage(vocab.LearningLang, entered, score),
		Study:   *updated,
	}
	if s.observer != nil {
		s.observer.AttemptGraded(score, updated.WellKnown)
	}

	progress, err := s.recordOutcome(ctx, updated.UserID, score == 0, updated.WellKnown)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update user progress",
			slog.Int64("user_id", updated.UserID),
			slog.Int64("vocab_study_id", studyID),
			slog.String("error", err.Error()))
		return res, err
	}
	res.Progress = progress

	s.logger.DebugContext(ctx, "attempt graded",
		slog.Int64("vocab_id", vocabID),
		slog.Int64("vocab_study_id", studyID),
		slog.Int("score", score),
		slog.Bool("well_known", updated.WellKnown))

	return res, nil
}

// BuildPrompt renders the translation prompt for a vocab.
func (s *Service) BuildPrompt(vocab models.Vocab, userNotes string) string {
	return BuildPrompt(vocab, userNotes)
}

// UserProgress returns the user's aggregate with the access code removed.
func (s *Service) UserProgress(ctx context.Context, userID int64) (*models.UserProgress, error) {
	progress, err := s.progress.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for user %d: %w", userID, err)
	}
	public := *progress
	public.Code = ""
	return &public, nil
}

// StudyStats returns a study record with its vocab.
func (s *Service) StudyStats(ctx context.Context, studyID int64) (*models.StudyPair, error) {
	vs, err := s.studies.GetByID(ctx, studyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocab study %d: %w", studyID, err)
	}
	vocab, err := s.vocab.GetByID(ctx, vs.VocabID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocab %d: %w", vs.VocabID, err)
	}
	return &models.StudyPair{Study: *vs, Vocab: *vocab}, nil
}

func (s *Service) recordScore(ctx context.Context, studyID int64, score int) (*models.VocabStudy, error) {
	unlock := s.locks.Lock(fmt.Sprintf("study:%d", studyID))
	defer unlock()

	current, err := s.studies.GetByID(ctx, studyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocab study %d: %w", studyID, err)
	}

	updated := ApplyScore(*current, score, s.now())
	if err := s.studies.Save(ctx, &updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to save vocab study",
			slog.Int64("vocab_study_id", studyID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save vocab study %d: %w", studyID, err)
	}

	return &updated, nil
}

func (s *Service) recordOutcome(ctx context.Context, userID int64, correct, wellKnown bool) (*models.UserProgress, error) {
	unlock := s.locks.Lock(fmt.Sprintf("user:%d", userID))
	defer unlock()

	current, err := s.progress.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for user %d: %w", userID, err)
	}

	updated := ApplyOutcome(*current, correct, wellKnown, s.now())
	if err := s.progress.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save progress for user %d: %w", userID, err)
	}

	return &updated, nil
}

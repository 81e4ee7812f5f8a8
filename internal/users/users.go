// Package users creates learners and resolves their access codes.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heather92115/palabras/internal/store"
	"github.com/heather92115/palabras/pkg/models"
)

// ErrEmptyName is returned when creating a user without a name.
var ErrEmptyName = errors.New("user name is required")

// Service manages user accounts.
type Service struct {
	store  store.UserStore
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a user service.
func NewService(s store.UserStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  s,
		logger: logger.With(slog.String("component", "users")),
		now:    time.Now,
	}
}

// Create adds a user with zeroed counters and a random access code.
func (s *Service) Create(ctx context.Context, name string) (*models.UserProgress, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	user := &models.UserProgress{
		Name:          name,
		Code:          uuid.NewString(),
		SmallestVocab: 1,
		Updated:       s.now(),
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", name, err)
	}

	s.logger.InfoContext(ctx, "user created", slog.Int64("user_id", user.ID))
	return user, nil
}

// FindByCode returns the user owning the access code.
func (s *Service) FindByCode(ctx context.Context, code string) (*models.UserProgress, error) {
	user, err := s.store.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by code: %w", err)
	}
	return user, nil
}

// List returns every user.
func (s *Service) List(ctx context.Context) ([]models.UserProgress, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return list, nil
}

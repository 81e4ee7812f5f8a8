// Package scheduler runs the hourly study reminder job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/heather92115/palabras/internal/config"
	"github.com/heather92115/palabras/pkg/models"
)

// Default reminder window, inclusive hours.
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier delivers a reminder that count vocab are waiting for the user.
type Notifier interface {
	SendReminders(userID int64, count int) error
}

// BatchSource selects the vocab a user would study next.
type BatchSource interface {
	GetBatch(ctx context.Context, userID int64, limit int) ([]models.StudyPair, error)
}

// ReminderRecorder counts reminder deliveries.
type ReminderRecorder interface {
	RecordReminder(success bool)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	batches   BatchSource
	recorder  ReminderRecorder
	logger    *slog.Logger
	now       func() time.Time

	users     []int64
	batchSize int
	startHour int
	endHour   int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRecorder reports every delivery attempt to r.
func WithRecorder(r ReminderRecorder) Option {
	return func(s *Scheduler) { s.recorder = r }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for the reminder window.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler that reminds cfg.Users when they have vocab to study.
// A zero window in cfg falls back to the default hours.
func New(notifier Notifier, batches BatchSource, cfg config.ReminderConfig, batchSize int, opts ...Option) *Scheduler {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		batches:   batches,
		logger:    slog.Default(),
		now:       time.Now,
		users:     cfg.Users,
		batchSize: batchSize,
		startHour: cfg.StartHour,
		endHour:   cfg.EndHour,
	}
	if s.startHour == 0 && s.endHour == 0 {
		s.startHour = DefaultNotificationStartHour
		s.endHour = DefaultNotificationEndHour
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "scheduler"))

	return s
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders, context.Background()); err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started",
		slog.Int("start_hour", s.startHour),
		slog.Int("end_hour", s.endHour),
		slog.Int("users", len(s.users)))

	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// InWindow reports whether hour lies inside the configured reminder hours.
func (s *Scheduler) InWindow(hour int) bool {
	return hour >= s.startHour && hour <= s.endHour
}

func (s *Scheduler) checkAndSendReminders(ctx context.Context) {
	currentHour := s.now().Hour()
	if !s.InWindow(currentHour) {
		s.logger.Debug("outside notification hours, skipping reminders",
			slog.Int("hour", currentHour))
		return
	}

	for _, userID := range s.users {
		if err := s.RunManualCheck(ctx, userID); err != nil {
			s.logger.Error("failed to remind user",
				slog.Int64("user_id", userID),
				slog.String("error", err.Error()))
		}
	}
}

// RunManualCheck reminds a single user if they have vocab to study, ignoring the window.
func (s *Scheduler) RunManualCheck(ctx context.Context, userID int64) error {
	batch, err := s.batches.GetBatch(ctx, userID, s.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get study batch for user %d: %w", userID, err)
	}
	if len(batch) == 0 {
		return nil
	}

	err = s.notifier.SendReminders(userID, len(batch))
	if s.recorder != nil {
		s.recorder.RecordReminder(err == nil)
	}
	if err != nil {
		return fmt.Errorf("failed to send reminder to user %d: %w", userID, err)
	}

	return nil
}

// LogNotifier writes reminders to the log. It is used when no chat transport runs.
type LogNotifier struct {
	Logger *slog.Logger
}

// SendReminders implements Notifier.
func (n LogNotifier) SendReminders(userID int64, count int) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("vocab waiting for study", slog.Int64("user_id", userID), slog.Int("count", count))
	return nil
}

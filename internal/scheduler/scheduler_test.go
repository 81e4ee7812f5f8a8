package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heather92115/palabras/internal/config"
	"github.com/heather92115/palabras/pkg/models"
)

type fakeBatches struct {
	sizes map[int64]int
	err   error
}

func (f fakeBatches) GetBatch(_ context.Context, userID int64, limit int) ([]models.StudyPair, error) {
	if f.err != nil {
		return nil, f.err
	}
	n := min(f.sizes[userID], limit)
	return make([]models.StudyPair, n), nil
}

type sentReminder struct {
	userID int64
	count  int
}

type fakeNotifier struct {
	sent []sentReminder
	err  error
}

func (f *fakeNotifier) SendReminders(userID int64, count int) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentReminder{userID, count})
	return nil
}

type fakeRecorder struct {
	success, failure int
}

func (f *fakeRecorder) RecordReminder(success bool) {
	if success {
		f.success++
	} else {
		f.failure++
	}
}

func clockAt(hour int) func() time.Time {
	return func() time.Time { return time.Date(2024, 5, 1, hour, 30, 0, 0, time.UTC) }
}

func TestCheckAndSendReminders(t *testing.T) {
	notifier := &fakeNotifier{}
	rec := &fakeRecorder{}
	batches := fakeBatches{sizes: map[int64]int{1: 3, 2: 0, 3: 25}}
	cfg := config.ReminderConfig{StartHour: 9, EndHour: 17, Users: []int64{1, 2, 3}}

	s := New(notifier, batches, cfg, 10, WithRecorder(rec), WithClock(clockAt(12)))
	s.checkAndSendReminders(context.Background())

	assert.Equal(t, []sentReminder{{1, 3}, {3, 10}}, notifier.sent)
	assert.Equal(t, 2, rec.success)
	assert.Zero(t, rec.failure)
}

func TestCheckAndSendRemindersOutsideWindow(t *testing.T) {
	notifier := &fakeNotifier{}
	cfg := config.ReminderConfig{StartHour: 9, EndHour: 17, Users: []int64{1}}

	for _, hour := range []int{0, 8, 18, 23} {
		s := New(notifier, fakeBatches{sizes: map[int64]int{1: 3}}, cfg, 10, WithClock(clockAt(hour)))
		s.checkAndSendReminders(context.Background())
	}
	assert.Empty(t, notifier.sent)
}

func TestDefaultWindow(t *testing.T) {
	s := New(&fakeNotifier{}, fakeBatches{}, config.ReminderConfig{}, 10)

	assert.False(t, s.InWindow(DefaultNotificationStartHour-1))
	assert.True(t, s.InWindow(DefaultNotificationStartHour))
	assert.True(t, s.InWindow(DefaultNotificationEndHour))
	assert.False(t, s.InWindow(DefaultNotificationEndHour+1))
}

func TestRunManualCheckErrors(t *testing.T) {
	rec := &fakeRecorder{}
	s := New(&fakeNotifier{err: errors.New("blocked")}, fakeBatches{sizes: map[int64]int{5: 1}},
		config.ReminderConfig{}, 10, WithRecorder(rec))

	err := s.RunManualCheck(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
	assert.Equal(t, 1, rec.failure)

	s = New(&fakeNotifier{}, fakeBatches{err: errors.New("db down")}, config.ReminderConfig{}, 10, WithRecorder(rec))
	err = s.RunManualCheck(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, 1, rec.failure, "no delivery attempted")
}

func TestStartStop(t *testing.T) {
	s := New(LogNotifier{}, fakeBatches{}, config.ReminderConfig{}, 10)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.SendReminders(1, 4))
}

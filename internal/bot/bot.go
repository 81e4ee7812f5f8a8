// Package bot runs study sessions over Telegram.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/heather92115/palabras/pkg/models"
)

// ErrNotConnected is returned when a message is sent before Connect.
var ErrNotConnected = errors.New("bot is not connected")

// StudyService is the part of study.Service the bot uses.
type StudyService interface {
	GetBatch(ctx context.Context, userID int64, limit int) ([]models.StudyPair, error)
	GradeAttempt(ctx context.Context, vocabID, studyID int64, entered string) (string, error)
	BuildPrompt(vocab models.Vocab, userNotes string) string
	UserProgress(ctx context.Context, userID int64) (*models.UserProgress, error)
}

// UserFinder resolves access codes to users.
type UserFinder interface {
	GetByCode(ctx context.Context, code string) (*models.UserProgress, error)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot represents the Telegram bot application
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   sender
	service  StudyService
	users    UserFinder
	config   *BotConfig
	sessions *sessions
	logger   *slog.Logger
}

// New creates a new bot instance. Call Connect before Run.
func New(service StudyService, users UserFinder, cfg *BotConfig, logger *slog.Logger) *Bot {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		service:  service,
		users:    users,
		config:   cfg,
		sessions: newSessions(),
		logger:   logger.With(slog.String("component", "bot")),
	}
}

// Connect authorizes the bot token with Telegram.
func (b *Bot) Connect(token string) error {
	if token == "" {
		return errors.New("telegram token is not set")
	}

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %w", err)
	}

	b.api = botAPI
	b.sender = botAPI
	b.logger.Info("authorized on account", slog.String("username", botAPI.Self.UserName))

	return nil
}

// Run handles incoming updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if b.api == nil {
		return ErrNotConnected
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.UpdateTimeout

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// SendReminders implements the scheduler.Notifier interface
func (b *Bot) SendReminders(userID int64, count int) error {
	chatID, ok := b.sessions.chatFor(userID)
	if !ok {
		return fmt.Errorf("user %d has no linked chat", userID)
	}

	noun := "vocab are"
	if count == 1 {
		noun = "vocab is"
	}
	if err := b.reply(chatID, fmt.Sprintf("%d %s waiting for you. Send /study to begin.", count, noun)); err != nil {
		return err
	}

	b.logger.Info("sent reminder", slog.Int64("user_id", userID), slog.Int("count", count))
	return nil
}

func (b *Bot) reply(chatID int64, text string) error {
	if b.sender == nil {
		return ErrNotConnected
	}
	if _, err := b.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}

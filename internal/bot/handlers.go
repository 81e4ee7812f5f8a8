package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/heather92115/palabras/internal/store"
)

const (
	helpText = `Available commands:
/start <code> - link this chat to your account
/study - start a study session
/stats - show your progress
/help - show this message`

	notLinkedText   = "This chat is not linked yet. Send /start followed by your access code."
	noSessionText   = "Send /study to start a session."
	failureText     = "Something went wrong, please try again later."
	finishedText    = "Session finished. Send /study for more."
	nothingDueText  = "Nothing to study right now."
	unknownCodeText = "Unknown access code."
)

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	var err error
	if message.IsCommand() {
		err = b.HandleCommand(ctx, message)
	} else {
		err = b.handleAnswer(ctx, message)
	}
	if err != nil {
		b.logger.Error("failed to handle message",
			slog.Int64("chat_id", message.Chat.ID),
			slog.String("error", err.Error()))
	}
}

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStart(ctx, message)
	case "study":
		return b.handleStudy(ctx, message)
	case "stats":
		return b.handleStats(ctx, message)
	case "help":
		return b.reply(message.Chat.ID, helpText)
	default:
		return b.reply(message.Chat.ID, "Unknown command.\n\n"+helpText)
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	code := strings.TrimSpace(message.CommandArguments())
	if code == "" {
		return b.reply(chatID, "Welcome to palabras!\n\n"+notLinkedText)
	}

	user, err := b.users.GetByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return b.reply(chatID, unknownCodeText)
	}
	if err != nil {
		_ = b.reply(chatID, failureText)
		return fmt.Errorf("failed to find user by code: %w", err)
	}

	b.sessions.link(chatID, user.ID)
	b.logger.Info("chat linked", slog.Int64("chat_id", chatID), slog.Int64("user_id", user.ID))

	return b.reply(chatID, fmt.Sprintf("Welcome, %s! Send /study to begin.", user.Name))
}

func (b *Bot) handleStudy(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	userID, ok := b.sessions.userFor(chatID)
	if !ok {
		return b.reply(chatID, notLinkedText)
	}

	batch, err := b.service.GetBatch(ctx, userID, b.config.BatchSize)
	if err != nil {
		_ = b.reply(chatID, failureText)
		return err
	}
	if len(batch) == 0 {
		return b.reply(chatID, nothingDueText)
	}

	b.sessions.begin(chatID, batch)
	return b.sendPrompt(chatID)
}

// handleAnswer grades plain text against the vocab currently asked in the chat.
func (b *Bot) handleAnswer(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	if _, ok := b.sessions.userFor(chatID); !ok {
		return b.reply(chatID, notLinkedText)
	}

	pair, ok := b.sessions.answer(chatID)
	if !ok {
		return b.reply(chatID, noSessionText)
	}

	result, err := b.service.GradeAttempt(ctx, pair.Vocab.ID, pair.Study.ID, message.Text)
	if err != nil {
		_ = b.reply(chatID, failureText)
		return err
	}
	if err := b.reply(chatID, result); err != nil {
		return err
	}

	if _, more := b.sessions.current(chatID); !more {
		return b.reply(chatID, finishedText)
	}
	return b.sendPrompt(chatID)
}

func (b *Bot) handleStats(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	userID, ok := b.sessions.userFor(chatID)
	if !ok {
		return b.reply(chatID, notLinkedText)
	}

	progress, err := b.service.UserProgress(ctx, userID)
	if err != nil {
		_ = b.reply(chatID, failureText)
		return err
	}

	text := fmt.Sprintf("Your progress\n\nCorrect: %d\nIncorrect: %d\nWell known: %d\nAccuracy: %.0f%%",
		progress.NumCorrect, progress.NumIncorrect, progress.NumKnown, progress.TotalPercentage*100)
	return b.reply(chatID, text)
}

func (b *Bot) sendPrompt(chatID int64) error {
	pair, ok := b.sessions.current(chatID)
	if !ok {
		return b.reply(chatID, noSessionText)
	}
	return b.reply(chatID, b.service.BuildPrompt(pair.Vocab, pair.Study.UserNotes))
}

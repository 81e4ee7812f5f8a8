package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heather92115/palabras/internal/bot"
	"github.com/heather92115/palabras/internal/scheduler"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram study bot with reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := newApplication(ctx, cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		cfg := bot.DefaultConfig()
		cfg.BatchSize = app.config.Study.BatchSize

		b := bot.New(app.study, app.userRepo, cfg, app.logger)
		if err := b.Connect(app.config.Telegram.Token); err != nil {
			return err
		}

		reminders := scheduler.New(b, app.study, app.config.Reminder, app.config.Study.BatchSize,
			scheduler.WithRecorder(app.metrics),
			scheduler.WithLogger(app.logger))
		if err := reminders.Start(); err != nil {
			return err
		}
		defer reminders.Stop()

		return b.Run(ctx)
	},
}

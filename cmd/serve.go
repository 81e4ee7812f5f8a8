package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heather92115/palabras/internal/api"
	"github.com/heather92115/palabras/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the study HTTP API and run the reminder job",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := newApplication(ctx, cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		reminders := scheduler.New(
			scheduler.LogNotifier{Logger: app.logger},
			app.study,
			app.config.Reminder,
			app.config.Study.BatchSize,
			scheduler.WithRecorder(app.metrics),
			scheduler.WithLogger(app.logger),
		)
		if err := reminders.Start(); err != nil {
			return err
		}
		defer reminders.Stop()

		handler := api.NewStudyHandler(app.study, app.config.Study.BatchSize, app.logger)
		server := &http.Server{
			Addr:              app.config.Server.Addr,
			Handler:           api.NewRouter(handler, app.metrics, app.logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			app.logger.Info("http server listening", slog.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		app.logger.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	},
}

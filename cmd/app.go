package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/heather92115/palabras/internal/config"
	"github.com/heather92115/palabras/internal/database"
	"github.com/heather92115/palabras/internal/importer"
	"github.com/heather92115/palabras/internal/logger"
	"github.com/heather92115/palabras/internal/metrics"
	"github.com/heather92115/palabras/internal/study"
	"github.com/heather92115/palabras/internal/users"
)

// application holds the dependencies shared by every command.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sqlx.DB
	metrics *metrics.Metrics

	vocab    *database.VocabRepository
	studies  *database.VocabStudyRepository
	userRepo *database.UserRepository

	study    *study.Service
	users    *users.Service
	importer *importer.Importer
}

func newApplication(ctx context.Context, cmd *cobra.Command) (*application, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	log := logger.Setup(cfg.Server.LogLevel)

	db, err := database.Connect(ctx, database.Config{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	app := &application{
		config:   cfg,
		logger:   log,
		db:       db,
		metrics:  metrics.NewMetrics(),
		vocab:    database.NewVocabRepository(db),
		studies:  database.NewVocabStudyRepository(db),
		userRepo: database.NewUserRepository(db),
	}
	app.study = study.NewService(app.vocab, app.studies, app.userRepo,
		study.WithObserver(app.metrics),
		study.WithLogger(log))
	app.users = users.NewService(app.userRepo, log)
	app.importer = importer.New(app.vocab, app.studies, app.userRepo, log)

	return app, nil
}

func (a *application) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", slog.String("error", err.Error()))
	}
}

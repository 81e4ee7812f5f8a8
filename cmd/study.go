package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heather92115/palabras/pkg/models"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Study a batch of vocab in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		userID, _ := cmd.Flags().GetInt64("user")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = app.config.Study.BatchSize
		}

		return runStudySession(cmd.Context(), app.study, userID, limit, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	studyCmd.Flags().Int64("user", 1, "User id to study as")
	studyCmd.Flags().Int("limit", 0, "Number of vocab to study (defaults to study.batch_size)")
}

type studySession interface {
	GetBatch(ctx context.Context, userID int64, limit int) ([]models.StudyPair, error)
	GradeAttempt(ctx context.Context, vocabID, studyID int64, entered string) (string, error)
	BuildPrompt(vocab models.Vocab, userNotes string) string
}

// runStudySession prompts for each vocab of a batch and prints the graded outcome.
// It stops early when in is exhausted.
func runStudySession(ctx context.Context, svc studySession, userID int64, limit int, in io.Reader, out io.Writer) error {
	batch, err := svc.GetBatch(ctx, userID, limit)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		fmt.Fprintln(out, "Nothing to study right now.")
		return nil
	}

	scanner := bufio.NewScanner(in)
	for i, pair := range batch {
		fmt.Fprintf(out, "[%d/%d] %s\n> ", i+1, len(batch), svc.BuildPrompt(pair.Vocab, pair.Study.UserNotes))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		message, err := svc.GradeAttempt(ctx, pair.Vocab.ID, pair.Study.ID, scanner.Text())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, message)
	}

	return nil
}

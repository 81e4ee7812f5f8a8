package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heather92115/palabras/internal/config"
	"github.com/heather92115/palabras/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import vocabulary",
}

var importDuoCmd = &cobra.Command{
	Use:   "duo <export.json>",
	Short: "Import a Duolingo vocabulary export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		userID, _ := cmd.Flags().GetInt64("user")
		vocabConfigPath, _ := cmd.Flags().GetString("vocab-config")
		translationsPath, _ := cmd.Flags().GetString("translations-config")

		vocabConfig := &config.VocabConfig{}
		if vocabConfigPath != "" {
			if vocabConfig, err = config.LoadVocabConfig(vocabConfigPath); err != nil {
				return err
			}
		}

		var translations map[string]string
		if translationsPath != "" {
			files, err := config.LoadTranslationsConfig(translationsPath)
			if err != nil {
				return err
			}
			translations = importer.LoadTranslations(files, app.logger)
		}

		export, err := importer.LoadDuoExport(args[0])
		if err != nil {
			return err
		}

		result, err := app.importer.ImportDuo(cmd.Context(), export, *vocabConfig, translations, userID)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

var importSheetCmd = &cobra.Command{
	Use:   "sheet <file.csv|file.xlsx>",
	Short: "Import vocabulary from a CSV or Excel sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		userID, _ := cmd.Flags().GetInt64("user")
		sheet, _ := cmd.Flags().GetString("sheet")
		startRow, _ := cmd.Flags().GetInt("start-row")

		cfg := importer.DefaultSheetConfig()
		cfg.FilePath = args[0]
		if sheet != "" {
			cfg.SheetName = sheet
		}
		if startRow > 0 {
			cfg.StartRow = startRow
		}

		result, err := app.importer.ImportSheet(cmd.Context(), cfg, userID)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

var exportMissingCmd = &cobra.Command{
	Use:   "export-missing <file.csv|file.xlsx>",
	Short: "Export vocab that has no first language translation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		n, err := app.importer.ExportMissingFirst(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d vocab to %s\n", n, filepath.Clean(args[0]))
		return nil
	},
}

func init() {
	importCmd.PersistentFlags().Int64("user", 1, "User who receives study records for imported vocab")

	importDuoCmd.Flags().String("vocab-config", "", "Path to vocab_config.json")
	importDuoCmd.Flags().String("translations-config", "", "Path to translations_config.json")

	importSheetCmd.Flags().String("sheet", "", "Sheet name for Excel files")
	importSheetCmd.Flags().Int("start-row", 0, "First data row, 1-based")

	importCmd.AddCommand(importDuoCmd)
	importCmd.AddCommand(importSheetCmd)
}

func printResult(w io.Writer, r *importer.Result) {
	fmt.Fprintf(w, "Processed: %d\nCreated: %d\nUpdated: %d\nSkipped: %d\nStudy records created: %d\n",
		r.TotalProcessed, r.Created, r.Updated, r.Skipped, r.StudiesCreated)
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "Errors (%d):\n  %s\n", len(r.Errors), strings.Join(r.Errors, "\n  "))
	}
}

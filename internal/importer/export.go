package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heather92115/palabras/pkg/models"
)

// MissingFirstHeader starts every CSV export of vocab without a translation
const MissingFirstHeader = "learning, infinitive, pos"

// ExportMissingFirst writes all vocab lacking a first language translation to
// path, as .xlsx when the extension says so and CSV otherwise. The file must
// not exist yet. It returns the number of vocab written.
func (im *Importer) ExportMissingFirst(ctx context.Context, path string) (int, error) {
	list, err := im.vocab.ListEmptyFirstLang(ctx, math.MaxInt32)
	if err != nil {
		return 0, err
	}

	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		err = writeMissingXLSX(path, list)
	} else {
		err = writeMissingCSV(path, list)
	}
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func writeMissingCSV(path string, list []models.Vocab) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, MissingFirstHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	w := csv.NewWriter(f)
	for _, v := range list {
		if err := w.Write([]string{v.LearningLang, v.Infinitive, v.Pos}); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return f.Close()
}

func writeMissingXLSX(path string, list []models.Vocab) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("failed to create export file: %s already exists", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"learning", "infinitive", "pos"}); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for i, v := range list {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &[]interface{}{v.LearningLang, v.Infinitive, v.Pos}); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}
	return nil
}

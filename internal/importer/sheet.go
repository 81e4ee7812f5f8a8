package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heather92115/palabras/pkg/models"
)

// SheetConfig defines the spreadsheet import configuration
type SheetConfig struct {
	FilePath           string // Path to the Excel or CSV file
	LearningColumn     string // Column with the learning language text
	FirstColumn        string // Column with the first language text
	AlternativesColumn string // Column with comma separated alternatives
	HintColumn         string
	PosColumn          string
	SheetName          string // Name of the sheet to import, Excel only
	StartRow           int    // The row to start importing from (1-based index)
}

// DefaultSheetConfig returns the default import configuration
func DefaultSheetConfig() SheetConfig {
	return SheetConfig{
		LearningColumn:     "A",
		FirstColumn:        "B",
		AlternativesColumn: "C",
		HintColumn:         "D",
		PosColumn:          "E",
		SheetName:          "Sheet1",
		StartRow:           2, // By default, start from the second row (skip header)
	}
}

// ImportSheet imports vocab from an Excel or CSV file. Existing vocab with the
// same learning text is updated. When userID is non zero the user gets a
// study record for every imported vocab.
func (im *Importer) ImportSheet(ctx context.Context, cfg SheetConfig, userID int64) (*Result, error) {
	if userID != 0 {
		if err := im.verifyUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	rows, err := readRows(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < cfg.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		if err := im.processRow(ctx, row, cfg, userID, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// readRows returns all rows of the file, choosing the reader by extension
func readRows(cfg SheetConfig) ([][]string, error) {
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		return readCSVRows(cfg.FilePath)
	}

	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processRow creates or updates the vocab of a single row
func (im *Importer) processRow(ctx context.Context, row []string, cfg SheetConfig, userID int64, result *Result) error {
	learning := cell(row, cfg.LearningColumn)
	if learning == "" {
		result.Skipped++
		return fmt.Errorf("learning text cannot be empty")
	}

	incoming := models.Vocab{
		LearningLang: learning,
		FirstLang:    cell(row, cfg.FirstColumn),
		Alternatives: cell(row, cfg.AlternativesColumn),
		Hint:         cell(row, cfg.HintColumn),
		Pos:          cell(row, cfg.PosColumn),
	}

	existing, err := im.vocab.FindByLearning(ctx, learning)
	if err != nil {
		return err
	}

	var vocabID int64
	if existing != nil {
		if !mergeSheetFields(existing, incoming) {
			result.Skipped++
		} else {
			if err := im.vocab.Update(ctx, existing); err != nil {
				return fmt.Errorf("failed to update vocab: %w", err)
			}
			result.Updated++
		}
		vocabID = existing.ID
	} else {
		if err := im.vocab.Create(ctx, &incoming); err != nil {
			return fmt.Errorf("failed to create vocab: %w", err)
		}
		result.Created++
		vocabID = incoming.ID
	}

	if userID != 0 {
		created, err := im.ensureStudy(ctx, vocabID, userID, nil)
		if err != nil {
			return fmt.Errorf("failed to create vocab study: %w", err)
		}
		if created {
			result.StudiesCreated++
		}
	}
	return nil
}

// mergeSheetFields copies non empty incoming fields that differ. It reports whether anything changed.
func mergeSheetFields(existing *models.Vocab, incoming models.Vocab) bool {
	changed := false
	set := func(dst *string, v string) {
		if v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}
	set(&existing.FirstLang, incoming.FirstLang)
	set(&existing.Alternatives, incoming.Alternatives)
	set(&existing.Hint, incoming.Hint)
	set(&existing.Pos, incoming.Pos)
	return changed
}

// cell returns the trimmed value of a lettered column, or "" when the column is unset or missing
func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// columnToIndex converts an Excel column letter to a zero based index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

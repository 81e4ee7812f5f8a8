package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/heather92115/palabras/internal/config"
	"github.com/heather92115/palabras/pkg/models"
)

// DuoExport is the part of a Duolingo vocabulary export used for imports
type DuoExport struct {
	LearningLanguage string          `json:"learning_language"`
	FromLanguage     string          `json:"from_language"`
	VocabOverview    []DuoVocabEntry `json:"vocab_overview"`
}

// DuoVocabEntry is one learned word of the export
type DuoVocabEntry struct {
	WordString     string  `json:"word_string"`
	NormalizedWord string  `json:"normalized_string"`
	Pos            string  `json:"pos"`
	Infinitive     string  `json:"infinitive"`
	Skill          string  `json:"skill"`
	Gender         string  `json:"gender"`
	Strength       float64 `json:"strength"`
	LastPracticed  string  `json:"last_practiced"`
}

// LoadDuoExport reads a Duolingo vocabulary export file
func LoadDuoExport(path string) (*DuoExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocab export: %w", err)
	}

	var export DuoExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse vocab export %s: %w", path, err)
	}
	return &export, nil
}

// ImportDuo merges the export's words into the vocab table and makes sure the
// user has a study record for each, seeded with the export's strength.
// Translations map learning text to first language text for new vocab.
func (im *Importer) ImportDuo(
	ctx context.Context,
	export *DuoExport,
	cfg config.VocabConfig,
	translations map[string]string,
	userID int64,
) (*Result, error) {
	if err := im.verifyUser(ctx, userID); err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}
	for i, entry := range export.VocabOverview {
		learning := strings.TrimSpace(entry.WordString)
		if learning == "" {
			result.Skipped++
			continue
		}
		result.TotalProcessed++

		vocab, err := im.syncEntry(ctx, entry, learning, cfg, translations, result)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Entry %d (%s): %v", i+1, learning, err))
			continue
		}

		strength := entry.Strength
		created, err := im.ensureStudy(ctx, vocab.ID, userID, &strength)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Entry %d (%s): %v", i+1, learning, err))
			continue
		}
		if created {
			result.StudiesCreated++
		}
	}

	im.logger.InfoContext(ctx, "vocab export imported",
		slog.Int64("user_id", userID),
		slog.Int("processed", result.TotalProcessed),
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("errors", len(result.Errors)))

	return result, nil
}

// syncEntry finds the vocab an entry belongs to and merges it, or creates a new vocab
func (im *Importer) syncEntry(
	ctx context.Context,
	entry DuoVocabEntry,
	learning string,
	cfg config.VocabConfig,
	translations map[string]string,
	result *Result,
) (*models.Vocab, error) {
	existing, err := im.findExisting(ctx, entry, learning, cfg)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if MergeLearning(existing, learning, cfg.PluralSuffix) {
			if err := im.vocab.Update(ctx, existing); err != nil {
				return nil, err
			}
			result.Updated++
		} else {
			result.Skipped++
		}
		return existing, nil
	}

	hint, _ := DetermineHint(cfg, learning)
	vocab := &models.Vocab{
		LearningLang: learning,
		FirstLang:    translations[learning],
		Skill:        entry.Skill,
		Infinitive:   entry.Infinitive,
		Pos:          entry.Pos,
		Hint:         hint,
	}
	if err := im.vocab.Create(ctx, vocab); err != nil {
		return nil, err
	}
	result.Created++
	return vocab, nil
}

// findExisting looks up by learning text, then alternatives, then for non
// verbs by a similar gendered or plural form
func (im *Importer) findExisting(ctx context.Context, entry DuoVocabEntry, learning string, cfg config.VocabConfig) (*models.Vocab, error) {
	if v, err := im.vocab.FindByLearning(ctx, learning); err != nil || v != nil {
		return v, err
	}
	if v, err := im.vocab.FindByAlternative(ctx, learning); err != nil || v != nil {
		return v, err
	}

	probe := models.Vocab{Pos: entry.Pos, Infinitive: entry.Infinitive}
	if probe.IsVerb() || cfg.NonVerbMatchingSuffixes == "" {
		return nil, nil
	}
	for _, form := range SimilarForms(cfg.NonVerbMatchingSuffixes, learning) {
		v, err := im.vocab.FindByLearning(ctx, form)
		if err != nil || v != nil {
			return v, err
		}
	}
	return nil, nil
}

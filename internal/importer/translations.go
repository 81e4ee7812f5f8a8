package importer

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/heather92115/palabras/internal/config"
)

// LoadTranslations merges every configured file into one map. The first
// mapping seen for a learning text wins. Files that fail to load are logged
// and skipped.
func LoadTranslations(configs []config.TranslationsConfig, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.Default()
	}

	translations := make(map[string]string)
	for _, cfg := range configs {
		found, err := FindFirstLangTranslations(cfg)
		if err != nil {
			logger.Warn("skipping translation file",
				slog.String("component", "importer"),
				slog.String("file", cfg.FileName),
				slog.String("error", err.Error()))
			continue
		}
		for learning, first := range found {
			if _, ok := translations[learning]; !ok {
				translations[learning] = first
			}
		}
	}
	return translations
}

// FindFirstLangTranslations reads one translation file
func FindFirstLangTranslations(cfg config.TranslationsConfig) (map[string]string, error) {
	f, err := os.Open(cfg.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for skipped := 0; skipped < cfg.HeaderLines; skipped++ {
		if !scanner.Scan() {
			break
		}
	}

	var found map[string]string
	if cfg.UsesPattern() {
		found, err = findWithPattern(scanner, cfg)
	} else {
		found, err = findWithSplitter(scanner, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.FileName, err)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.FileName, err)
	}
	return found, nil
}

// findWithPattern captures the first group of each expression. The learning
// and first language parts may sit on different lines; a pair is recorded
// once both have been seen.
func findWithPattern(scanner *bufio.Scanner, cfg config.TranslationsConfig) (map[string]string, error) {
	learningRe, err := regexp.Compile(cfg.LearningRegex)
	if err != nil {
		return nil, fmt.Errorf("invalid learning regex: %w", err)
	}
	firstRe, err := regexp.Compile(cfg.FirstRegex)
	if err != nil {
		return nil, fmt.Errorf("invalid first language regex: %w", err)
	}

	found := make(map[string]string)
	var learning, first string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if learning == "" {
			learning = capture(learningRe, line)
		}
		if first == "" {
			first = capture(firstRe, line)
		}

		if learning != "" && first != "" {
			if _, ok := found[learning]; !ok {
				found[learning] = first
			}
			learning, first = "", ""
		}
	}
	return found, nil
}

func capture(re *regexp.Regexp, line string) string {
	m := re.FindStringSubmatch(line)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// findWithSplitter splits each line on the delimiter, or on whitespace when
// the delimiter is empty, and maps the learning column to the first column
func findWithSplitter(scanner *bufio.Scanner, cfg config.TranslationsConfig) (map[string]string, error) {
	if cfg.LearningIndex == cfg.FirstIndex {
		return nil, fmt.Errorf("indices are both %d", cfg.LearningIndex)
	}

	found := make(map[string]string)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var fields []string
		if cfg.Delimiter == "" {
			fields = strings.Fields(line)
		} else {
			fields = strings.Split(line, cfg.Delimiter)
		}

		if cfg.LearningIndex >= len(fields) || cfg.FirstIndex >= len(fields) {
			return nil, fmt.Errorf("found %d fields, but learning_index %d or first_index %d is out of range",
				len(fields), cfg.LearningIndex, cfg.FirstIndex)
		}

		learning := strings.TrimSpace(fields[cfg.LearningIndex])
		if _, ok := found[learning]; !ok {
			found[learning] = strings.TrimSpace(fields[cfg.FirstIndex])
		}
	}
	return found, nil
}

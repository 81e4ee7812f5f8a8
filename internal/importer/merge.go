package importer

import (
	"strings"

	"github.com/heather92115/palabras/internal/config"
	"github.com/heather92115/palabras/pkg/models"
)

// MergeLearning folds another form of a word into the vocab. When the
// current learning text is the plural of the additional text the two are
// swapped so the singular leads. The other form is appended to the
// alternatives unless already listed. It reports whether the vocab changed.
func MergeLearning(vocab *models.Vocab, additional, pluralSuffix string) bool {
	if additional == "" || vocab.LearningLang == additional {
		return false
	}

	learning, other := vocab.LearningLang, additional
	if singular, ok := trimPlural(vocab.LearningLang, pluralSuffix); ok && singular == additional {
		learning, other = additional, vocab.LearningLang
	}

	changed := vocab.LearningLang != learning
	vocab.LearningLang = learning

	if !hasAlternative(vocab.Alternatives, other) {
		if vocab.Alternatives == "" {
			vocab.Alternatives = other
		} else {
			vocab.Alternatives = vocab.Alternatives + ", " + other
		}
		changed = true
	}
	return changed
}

func trimPlural(word, suffix string) (string, bool) {
	if !strings.HasSuffix(word, suffix) {
		return "", false
	}
	return strings.TrimSuffix(word, suffix), true
}

func hasAlternative(alternatives, word string) bool {
	for _, alt := range strings.Split(alternatives, ",") {
		if strings.TrimSpace(alt) == word {
			return true
		}
	}
	return false
}

// DetermineHint returns a hint for multi word phrases, "phrase" followed by the
// name of every configured pronoun group found in it, and the word count.
// Single words get no hint.
func DetermineHint(cfg config.VocabConfig, learning string) (string, int) {
	words := strings.Fields(strings.ToLower(learning))
	if len(words) <= 1 {
		return "", len(words)
	}

	present := make(map[string]bool, len(words))
	for _, w := range words {
		present[w] = true
	}

	hint := "phrase"
	for _, pronoun := range cfg.Pronouns {
		for _, instance := range strings.Split(pronoun.Instances, ", ") {
			if present[instance] {
				hint += ", " + pronoun.Name
			}
		}
	}
	return hint, len(words)
}

// SimilarForms swaps a matching non verb suffix for each other configured
// suffix, e.g. gato gives gata, gatos and gatas for "o,a,os,as".
func SimilarForms(suffixes, learning string) []string {
	word := strings.ToLower(learning)

	var list []string
	for _, s := range strings.Split(suffixes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}

	original := ""
	for _, s := range list {
		if strings.HasSuffix(word, s) {
			original = s
			break
		}
	}
	if original == "" {
		return nil
	}

	stem := strings.TrimSuffix(word, original)
	var forms []string
	for _, s := range list {
		if s != original {
			forms = append(forms, stem+s)
		}
	}
	return forms
}

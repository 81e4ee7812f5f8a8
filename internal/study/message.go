package study

import (
	"fmt"
	"strings"

	"github.com/heather92115/palabras/pkg/models"
)

// OutcomeMessage describes how close the entered answer was.
func OutcomeMessage(learning, entered string, score int) string {
	switch {
	case score == 0:
		return "Perfect Match!"
	case score <= CloseDistance:
		return fmt.Sprintf("Close, it was '%s', you entered '%s'", learning, entered)
	default:
		return fmt.Sprintf("It was '%s', you entered '%s'", learning, entered)
	}
}

// BuildPrompt renders the text shown when asking for a translation.
func BuildPrompt(vocab models.Vocab, userNotes string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate: '%s'", vocab.FirstLang)
	if vocab.Hint != "" {
		fmt.Fprintf(&b, "    hint: %s", vocab.Hint)
	}
	if vocab.Pos != "" {
		fmt.Fprintf(&b, "    pos: %s", vocab.Pos)
	}
	if userNotes != "" {
		fmt.Fprintf(&b, "    your notes: %s", userNotes)
	}
	return b.String()
}

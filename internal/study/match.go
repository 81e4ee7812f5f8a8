package study

import (
	"strings"

	"github.com/agext/levenshtein"
)

const (
	// MaxDistance is the worst possible match score. Raw edit distances are capped here.
	MaxDistance = 10

	// WellKnownThreshold is the correctness above which a vocab counts as known.
	WellKnownThreshold = 0.98

	// CloseDistance is the largest score still reported as a near miss.
	CloseDistance = 3
)

// Score returns the smallest case-insensitive edit distance between the guess
// and the learning text or any of its comma separated alternatives, capped at
// MaxDistance. A blank guess always scores MaxDistance.
func Score(learning, alternatives, guess string) int {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if guess == "" {
		return MaxDistance
	}

	candidates := strings.Split(strings.ToLower(alternatives), ",")
	candidates = append(candidates, strings.ToLower(learning))

	best := MaxDistance
	for _, candidate := range candidates {
		d := levenshtein.Distance(strings.TrimSpace(candidate), guess, nil)
		if d < best {
			best = d
		}
	}

	return best
}

package study

import (
	"time"

	"github.com/heather92115/palabras/pkg/models"
)

// ApplyOutcome returns a copy of the user's progress after one graded answer.
// NumKnown grows on every answer to a vocab that is currently well known,
// not only when the vocab first becomes known.
func ApplyOutcome(current models.UserProgress, correct, wellKnown bool, now time.Time) models.UserProgress {
	updated := current
	if correct {
		updated.NumCorrect++
	} else {
		updated.NumIncorrect++
	}
	if wellKnown {
		updated.NumKnown++
	}

	answered := updated.NumCorrect + updated.NumIncorrect
	if answered > 0 {
		updated.TotalPercentage = float64(updated.NumCorrect) / float64(answered)
	} else {
		updated.TotalPercentage = 0
	}
	updated.Updated = now

	return updated
}

package study

import (
	"time"

	"github.com/heather92115/palabras/pkg/models"
)

// UpdateCorrectness folds a match score into the previous correctness ratio.
// A perfect match is weighted as two perfect observations.
func UpdateCorrectness(previous float64, score int) float64 {
	if score <= 0 {
		return (2.0 + previous) / 3.0
	}
	if score > MaxDistance {
		score = MaxDistance
	}

	closeness := float64(MaxDistance-score) / float64(MaxDistance)
	return (closeness + previous) / 2.0
}

// IsWellKnown reports whether a correctness ratio marks a vocab as known.
func IsWellKnown(correctness float64) bool {
	return correctness > WellKnownThreshold
}

// ApplyScore returns a copy of the study record updated for one graded attempt.
func ApplyScore(current models.VocabStudy, score int, now time.Time) models.VocabStudy {
	previous := current.Correctness()
	correctness := UpdateCorrectness(previous, score)
	change := correctness - previous
	tested := now

	updated := current
	updated.PercentageCorrect = &correctness
	updated.LastChange = &change
	updated.LastTested = &tested
	updated.WellKnown = IsWellKnown(correctness)
	updated.Attempts = current.Attempts + 1
	if score == 0 {
		updated.CorrectAttempts = current.CorrectAttempts + 1
	}

	return updated
}

package models

import "time"

// VocabStudy tracks how well a user knows a single vocab
type VocabStudy struct {
	ID                int64      `json:"id" db:"id"`
	VocabID           int64      `json:"vocab_id" db:"vocab_id"`
	UserID            int64      `json:"user_id" db:"user_id"`
	Attempts          int        `json:"attempts" db:"attempts"`
	CorrectAttempts   int        `json:"correct_attempts" db:"correct_attempts"`
	PercentageCorrect *float64   `json:"percentage_correct" db:"percentage_correct"` // nil until the first graded attempt
	LastChange        *float64   `json:"last_change" db:"last_change"`
	LastTested        *time.Time `json:"last_tested" db:"last_tested"` // nil until the first graded attempt
	WellKnown         bool       `json:"well_known" db:"well_known"`
	UserNotes         string     `json:"user_notes" db:"user_notes"`
	Created           time.Time  `json:"created" db:"created"`
}

// Correctness returns the running correctness ratio, zero when never graded
func (s VocabStudy) Correctness() float64 {
	if s.PercentageCorrect == nil {
		return 0
	}
	return *s.PercentageCorrect
}

// StudyPair joins a study record with the vocab it refers to
type StudyPair struct {
	Study VocabStudy `json:"study"`
	Vocab Vocab      `json:"vocab"`
}

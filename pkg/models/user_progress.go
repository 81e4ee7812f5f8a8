package models

import "time"

// UserProgress holds a user's overall answer statistics
type UserProgress struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Code            string    `json:"code,omitempty" db:"code"` // Access code used to link transports to the user
	NumKnown        int       `json:"num_known" db:"num_known"`
	NumCorrect      int       `json:"num_correct" db:"num_correct"`
	NumIncorrect    int       `json:"num_incorrect" db:"num_incorrect"`
	TotalPercentage float64   `json:"total_percentage" db:"total_percentage"`
	SmallestVocab   int       `json:"smallest_vocab" db:"smallest_vocab"`
	Updated         time.Time `json:"updated" db:"updated"`
}

package models

import (
	"strings"
	"time"
)

// Vocab represents a word or phrase in the learning language and its first language prompt
type Vocab struct {
	ID           int64     `json:"id" db:"id"`
	LearningLang string    `json:"learning_lang" db:"learning_lang"` // Word or phrase to be produced
	FirstLang    string    `json:"first_lang" db:"first_lang"`       // Shown to the user as the prompt
	Alternatives string    `json:"alternatives" db:"alternatives"`   // Comma separated accepted answers
	Skill        string    `json:"skill" db:"skill"`
	Infinitive   string    `json:"infinitive" db:"infinitive"` // Set for verbs
	Pos          string    `json:"pos" db:"pos"`               // Part of speech
	Hint         string    `json:"hint" db:"hint"`
	Created      time.Time `json:"created" db:"created"`
}

// IsVerb reports whether the part of speech marks the vocab as a verb
func (v Vocab) IsVerb() bool {
	return strings.EqualFold(v.Pos, "verb") || v.Infinitive != ""
}

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heather92115/palabras/internal/config"
	"github.com/heather92115/palabras/pkg/models"
)

func TestMergeLearning(t *testing.T) {
	v := models.Vocab{LearningLang: "cats"}

	assert.True(t, MergeLearning(&v, "cat", "s"))
	assert.Equal(t, "cat", v.LearningLang)
	assert.Equal(t, "cats", v.Alternatives)

	assert.True(t, MergeLearning(&v, "kitty", "s"))
	assert.Equal(t, "cat", v.LearningLang)
	assert.Equal(t, "cats, kitty", v.Alternatives)

	assert.False(t, MergeLearning(&v, "kitty", "s"), "already listed")
	assert.False(t, MergeLearning(&v, "cat", "s"), "same as learning text")
	assert.Equal(t, "cats, kitty", v.Alternatives)
}

func TestMergeLearningWithoutPluralSuffix(t *testing.T) {
	v := models.Vocab{LearningLang: "playas"}

	assert.True(t, MergeLearning(&v, "playa", ""))
	assert.Equal(t, "playas", v.LearningLang)
	assert.Equal(t, "playa", v.Alternatives)
}

func TestDetermineHint(t *testing.T) {
	cfg := config.VocabConfig{
		Pronouns: []config.Pronoun{
			{Name: "reflexive pronoun", Instances: "me, te, se, nos, os"},
			{Name: "subject pronoun", Instances: "yo, tú, él, ella"},
		},
	}

	tests := []struct {
		learning string
		hint     string
		words    int
	}{
		{"se acuerdan", "phrase, reflexive pronoun", 2},
		{"Tú y yo", "phrase, subject pronoun, subject pronoun", 3},
		{"la casa", "phrase", 2},
		{"casa", "", 1},
		{"", "", 0},
	}

	for _, tt := range tests {
		hint, words := DetermineHint(cfg, tt.learning)
		assert.Equal(t, tt.hint, hint, tt.learning)
		assert.Equal(t, tt.words, words, tt.learning)
	}
}

func TestSimilarForms(t *testing.T) {
	assert.Equal(t, []string{"gata", "gatos", "gatas"}, SimilarForms("o,a,os,as", "gato"))
	assert.Equal(t, []string{"gato", "gata", "gatos"}, SimilarForms("o,a,os,as", "Gatas"))
	assert.Equal(t, []string{"verdo", "verda", "verdos", "verdas"}, SimilarForms("o, a,os,as,e", "verde"))
	assert.Nil(t, SimilarForms("o,a", "papel"))
	assert.Nil(t, SimilarForms("", "gato"))
}

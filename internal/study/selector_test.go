package study

import (
	"testing"
	"time"

	"github.com/heather92115/palabras/pkg/models"
	"github.com/stretchr/testify/assert"
)

func pair(id int64, first string, tested *time.Time, wellKnown bool) models.StudyPair {
	return models.StudyPair{
		Study: models.VocabStudy{ID: id, VocabID: id, LastTested: tested, WellKnown: wellKnown},
		Vocab: models.Vocab{ID: id, LearningLang: "palabra", FirstLang: first},
	}
}

func ids(pairs []models.StudyPair) []int64 {
	out := make([]int64, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Study.ID)
	}
	return out
}

func at(minutes int) *time.Time {
	t := time.Date(2024, 1, 1, 0, minutes, 0, 0, time.UTC)
	return &t
}

func TestSelectBatchOrdersTestedVocabOldestFirst(t *testing.T) {
	pairs := []models.StudyPair{
		pair(2, "two", at(20), false),
		pair(1, "one", at(10), false),
		pair(3, "three", at(30), false),
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(SelectBatch(pairs, 3)))
}

func TestSelectBatchFillsWithSecondary(t *testing.T) {
	pairs := []models.StudyPair{
		pair(10, "untested a", nil, false),
		pair(1, "tested old", at(1), false),
		pair(11, "known", at(50), true),
		pair(2, "tested new", at(2), false),
		pair(12, "untested b", nil, false),
	}

	// primary (2, 1) then secondary (10, 11) in original order, reversed
	assert.Equal(t, []int64{11, 10, 1, 2}, ids(SelectBatch(pairs, 4)))
	assert.Equal(t, []int64{12, 11, 10, 1, 2}, ids(SelectBatch(pairs, 9)))
}

func TestSelectBatchTruncatesPrimary(t *testing.T) {
	pairs := []models.StudyPair{
		pair(1, "a", at(1), false),
		pair(2, "b", at(2), false),
		pair(3, "c", at(3), false),
		pair(4, "d", nil, false),
	}

	// the two most recent tested vocab, reversed
	assert.Equal(t, []int64{2, 3}, ids(SelectBatch(pairs, 2)))
}

func TestSelectBatchSkipsMissingPrompt(t *testing.T) {
	pairs := []models.StudyPair{
		pair(1, "", at(1), false),
		pair(2, "", nil, false),
		pair(3, "tres", nil, false),
	}

	got := SelectBatch(pairs, 5)
	assert.Equal(t, []int64{3}, ids(got))
	for _, p := range got {
		assert.NotEmpty(t, p.Vocab.FirstLang)
	}
}

func TestSelectBatchSizes(t *testing.T) {
	var pairs []models.StudyPair
	for i := int64(1); i <= 6; i++ {
		var tested *time.Time
		if i%2 == 0 {
			tested = at(int(i))
		}
		pairs = append(pairs, pair(i, "word", tested, i == 5))
	}

	for limit := 1; limit <= 6; limit++ {
		assert.Len(t, SelectBatch(pairs, limit), limit)
	}
	assert.Len(t, SelectBatch(pairs, 50), 6)
}

func TestSelectBatchEmpty(t *testing.T) {
	pairs := []models.StudyPair{pair(1, "uno", nil, false)}

	assert.Empty(t, SelectBatch(pairs, 0))
	assert.Empty(t, SelectBatch(pairs, -3))
	assert.NotNil(t, SelectBatch(nil, 5))
	assert.Empty(t, SelectBatch(nil, 5))
}

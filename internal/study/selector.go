package study

import (
	"sort"
	"time"

	"github.com/heather92115/palabras/pkg/models"
)

// SelectBatch picks at most limit pairs to present next.
//
// Pairs without a first language prompt are skipped. Vocab tested before but
// not yet well known come first, most recently tested leading, and untested or
// well known vocab fill any remaining room in their original order. The batch
// is then reversed so the freshest vocab is asked last.
func SelectBatch(pairs []models.StudyPair, limit int) []models.StudyPair {
	if limit <= 0 {
		return []models.StudyPair{}
	}

	var primary, secondary []models.StudyPair
	for _, p := range pairs {
		if p.Vocab.FirstLang == "" {
			continue
		}
		if p.Study.LastTested != nil && !p.Study.WellKnown {
			primary = append(primary, p)
		} else {
			secondary = append(secondary, p)
		}
	}

	sort.SliceStable(primary, func(i, j int) bool {
		return testedAt(primary[i]).After(testedAt(primary[j]))
	})

	batch := primary
	if len(batch) < limit {
		room := limit - len(batch)
		if room > len(secondary) {
			room = len(secondary)
		}
		batch = append(batch, secondary[:room]...)
	} else {
		batch = batch[:limit]
	}

	for i, j := 0, len(batch)-1; i < j; i, j = i+1, j-1 {
		batch[i], batch[j] = batch[j], batch[i]
	}

	if batch == nil {
		return []models.StudyPair{}
	}
	return batch
}

func testedAt(p models.StudyPair) time.Time {
	if p.Study.LastTested == nil {
		return time.Time{}
	}
	return *p.Study.LastTested
}

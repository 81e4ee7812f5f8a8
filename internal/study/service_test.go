package study

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/heather92115/palabras/internal/store"
	"github.com/heather92115/palabras/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVocabStore struct {
	vocab map[int64]models.Vocab
}

func (f *fakeVocabStore) GetByID(_ context.Context, id int64) (*models.Vocab, error) {
	v, ok := f.vocab[id]
	if !ok {
		return nil, store.ErrVocabNotFound
	}
	return &v, nil
}

type fakeStudyStore struct {
	mu      sync.Mutex
	studies map[int64]models.VocabStudy
	vocab   *fakeVocabStore
	saves   int
	saveErr error
}

func (f *fakeStudyStore) GetByID(_ context.Context, id int64) (*models.VocabStudy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vs, ok := f.studies[id]
	if !ok {
		return nil, store.ErrVocabStudyNotFound
	}
	return &vs, nil
}

func (f *fakeStudyStore) GetStudySet(_ context.Context, userID int64) ([]models.StudyPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pairs []models.StudyPair
	for id := int64(1); id <= int64(len(f.studies)); id++ {
		vs, ok := f.studies[id]
		if !ok || vs.UserID != userID {
			continue
		}
		pairs = append(pairs, models.StudyPair{Study: vs, Vocab: f.vocab.vocab[vs.VocabID]})
	}
	return pairs, nil
}

func (f *fakeStudyStore) Save(_ context.Context, vs *models.VocabStudy) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.studies[vs.ID] = *vs
	f.saves++
	return nil
}

type fakeProgressStore struct {
	mu      sync.Mutex
	users   map[int64]models.UserProgress
	saveErr error
}

func (f *fakeProgressStore) GetByID(_ context.Context, id int64) (*models.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &p, nil
}

func (f *fakeProgressStore) Save(_ context.Context, p *models.UserProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.users[p.ID] = *p
	return nil
}

type recordingObserver struct {
	mu      sync.Mutex
	batches []int
	scores  []int
}

func (r *recordingObserver) BatchServed(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, size)
}

func (r *recordingObserver) AttemptGraded(score int, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, score)
}

type fixture struct {
	vocab    *fakeVocabStore
	studies  *fakeStudyStore
	progress *fakeProgressStore
	observer *recordingObserver
	service  *Service
	now      time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()

	vocab := &fakeVocabStore{vocab: map[int64]models.Vocab{
		1: {ID: 1, LearningLang: "comprendimos", FirstLang: "we understood", Alternatives: "entendemos, intiendemos"},
		2: {ID: 2, LearningLang: "palabra", FirstLang: "word", Pos: "noun"},
		3: {ID: 3, LearningLang: "sin traducción"},
	}}
	studies := &fakeStudyStore{vocab: vocab, studies: map[int64]models.VocabStudy{
		1: {ID: 1, VocabID: 1, UserID: 1},
		2: {ID: 2, VocabID: 2, UserID: 1, UserNotes: "something you say"},
		3: {ID: 3, VocabID: 3, UserID: 1},
	}}
	progress := &fakeProgressStore{users: map[int64]models.UserProgress{
		1: {ID: 1, Name: "Ana", Code: "abc-123", NumKnown: 100, NumCorrect: 80, NumIncorrect: 20, TotalPercentage: 0.8},
	}}
	observer := &recordingObserver{}
	now := time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)

	return &fixture{
		vocab:    vocab,
		studies:  studies,
		progress: progress,
		observer: observer,
		now:      now,
		service: NewService(vocab, studies, progress,
			WithObserver(observer),
			WithClock(func() time.Time { return now })),
	}
}

func TestNewServicePanicsOnNilStores(t *testing.T) {
	f := setup(t)
	assert.Panics(t, func() { NewService(nil, f.studies, f.progress) })
	assert.Panics(t, func() { NewService(f.vocab, nil, f.progress) })
	assert.Panics(t, func() { NewService(f.vocab, f.studies, nil) })
}

func TestGradeAttemptPerfectMatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	msg, err := f.service.GradeAttempt(ctx, 1, 1, "intiendemos")
	require.NoError(t, err)
	assert.Equal(t, "Perfect Match!", msg)

	vs := f.studies.studies[1]
	require.NotNil(t, vs.PercentageCorrect)
	assert.InDelta(t, 2.0/3.0, *vs.PercentageCorrect, 1e-9)
	assert.Equal(t, 1, vs.Attempts)
	assert.Equal(t, 1, vs.CorrectAttempts)
	assert.Equal(t, f.now, *vs.LastTested)

	p := f.progress.users[1]
	assert.Equal(t, 81, p.NumCorrect)
	assert.Equal(t, 20, p.NumIncorrect)
	assert.Equal(t, 100, p.NumKnown)
	assert.InDelta(t, 81.0/101.0, p.TotalPercentage, 1e-9)
	assert.Equal(t, f.now, p.Updated)

	assert.Equal(t, []int{0}, f.observer.scores)
}

func TestGradeAttemptCloseMiss(t *testing.T) {
	f := setup(t)

	res, err := f.service.GradeAttemptDetailed(context.Background(), 2, 2, "palabre")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, "Close, it was 'palabra', you entered 'palabre'", res.Message)
	assert.Equal(t, 0, res.Study.CorrectAttempts)
	assert.Equal(t, 1, res.Study.Attempts)
	require.NotNil(t, res.Progress)
	assert.Equal(t, 21, res.Progress.NumIncorrect)
}

func TestGradeAttemptKeepsRawAnswerInMessage(t *testing.T) {
	f := setup(t)

	msg, err := f.service.GradeAttempt(context.Background(), 2, 2, "  idioma ")
	require.NoError(t, err)
	assert.Equal(t, "It was 'palabra', you entered '  idioma '", msg)
}

func TestGradeAttemptEmptyAnswer(t *testing.T) {
	f := setup(t)

	res, err := f.service.GradeAttemptDetailed(context.Background(), 2, 2, "")
	require.NoError(t, err)
	assert.Equal(t, MaxDistance, res.Score)
	assert.InDelta(t, 0.0, *res.Study.PercentageCorrect, 1e-9)
}

func TestGradeAttemptCountsKnownVocabEveryTime(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	high := 0.99
	vs := f.studies.studies[1]
	vs.PercentageCorrect = &high
	f.studies.studies[1] = vs

	for i := 0; i < 3; i++ {
		_, err := f.service.GradeAttempt(ctx, 1, 1, "comprendimos")
		require.NoError(t, err)
	}

	assert.True(t, f.studies.studies[1].WellKnown)
	assert.Equal(t, 103, f.progress.users[1].NumKnown)
}

func TestGradeAttemptNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.service.GradeAttempt(ctx, 99, 1, "x")
	assert.ErrorIs(t, err, store.ErrVocabNotFound)
	assert.True(t, store.IsNotFoundError(err))

	_, err = f.service.GradeAttempt(ctx, 1, 99, "x")
	assert.ErrorIs(t, err, store.ErrVocabStudyNotFound)

	f.studies.studies[4] = models.VocabStudy{ID: 4, VocabID: 2, UserID: 42}
	_, err = f.service.GradeAttempt(ctx, 2, 4, "palabra")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.Equal(t, 1, f.studies.studies[4].Attempts, "score sticks without the user record")
}

func TestGradeAttemptProgressFailureKeepsScore(t *testing.T) {
	f := setup(t)
	f.progress.saveErr = store.ErrUpdateFailed

	res, err := f.service.GradeAttemptDetailed(context.Background(), 2, 2, "palabra")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUpdateFailed)
	require.NotNil(t, res)
	assert.Nil(t, res.Progress)
	assert.Equal(t, 1, f.studies.studies[2].Attempts)
	assert.Equal(t, 80, f.progress.users[1].NumCorrect)
}

func TestGradeAttemptStudySaveFailure(t *testing.T) {
	f := setup(t)
	f.studies.saveErr = errors.New("disk full")

	_, err := f.service.GradeAttempt(context.Background(), 2, 2, "palabra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vocab study 2")
	assert.Equal(t, 80, f.progress.users[1].NumCorrect, "progress untouched when the score was not saved")
}

func TestGradeAttemptConcurrent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			answer := "palabra"
			if i%2 == 1 {
				answer = "nada"
			}
			_, err := f.service.GradeAttempt(ctx, 2, 2, answer)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	vs := f.studies.studies[2]
	assert.Equal(t, 20, vs.Attempts)
	assert.Equal(t, 10, vs.CorrectAttempts)
	p := f.progress.users[1]
	assert.Equal(t, 90, p.NumCorrect)
	assert.Equal(t, 30, p.NumIncorrect)
}

func TestGetBatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	batch, err := f.service.GetBatch(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, batch, 2, "vocab without a first language prompt is skipped")
	assert.Equal(t, []int64{2, 1}, ids(batch))
	assert.Equal(t, []int{2}, f.observer.batches)

	_, err = f.service.GradeAttempt(ctx, 1, 1, "nope")
	require.NoError(t, err)
	batch, err = f.service.GetBatch(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(batch), "tested vocab that is not known comes first")

	batch, err = f.service.GetBatch(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestBuildPromptWithNotes(t *testing.T) {
	f := setup(t)
	pair, err := f.service.StudyStats(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "Translate: 'word'    pos: noun    your notes: something you say",
		f.service.BuildPrompt(pair.Vocab, pair.Study.UserNotes))
}

func TestUserProgressHidesCode(t *testing.T) {
	f := setup(t)

	p, err := f.service.UserProgress(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, p.Code)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "abc-123", f.progress.users[1].Code)

	_, err = f.service.UserProgress(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestStudyStats(t *testing.T) {
	f := setup(t)

	pair, err := f.service.StudyStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "comprendimos", pair.Vocab.LearningLang)
	assert.Equal(t, int64(1), pair.Study.ID)

	_, err = f.service.StudyStats(context.Background(), 77)
	assert.ErrorIs(t, err, store.ErrVocabStudyNotFound)
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	k := newKeyedMutex()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("same")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Empty(t, k.locks)
	unlock := k.Lock(fmt.Sprintf("user:%d", 1))
	unlock()
	assert.Empty(t, k.locks)
}

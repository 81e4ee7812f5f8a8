package bot

import (
	"sync"

	"github.com/heather92115/palabras/pkg/models"
)

// session is the state of one chat: the linked user and the batch being studied.
type session struct {
	userID int64
	batch  []models.StudyPair
	pos    int
}

type sessions struct {
	mu     sync.Mutex
	byChat map[int64]*session
}

func newSessions() *sessions {
	return &sessions{byChat: make(map[int64]*session)}
}

// link attaches the chat to a user and drops any batch in progress.
func (s *sessions) link(chatID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChat[chatID] = &session{userID: userID}
}

func (s *sessions) userFor(chatID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byChat[chatID]
	if !ok {
		return 0, false
	}
	return sess.userID, true
}

// chatFor returns the lowest chat id linked to the user.
func (s *sessions) chatFor(userID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		found  bool
		chatID int64
	)
	for id, sess := range s.byChat {
		if sess.userID == userID && (!found || id < chatID) {
			chatID, found = id, true
		}
	}
	return chatID, found
}

func (s *sessions) begin(chatID int64, batch []models.StudyPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byChat[chatID]; ok {
		sess.batch = batch
		sess.pos = 0
	}
}

func (s *sessions) current(chatID int64) (models.StudyPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byChat[chatID]
	if !ok || sess.pos >= len(sess.batch) {
		return models.StudyPair{}, false
	}
	return sess.batch[sess.pos], true
}

// answer returns the pair awaiting an answer and moves past it.
func (s *sessions) answer(chatID int64) (models.StudyPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byChat[chatID]
	if !ok || sess.pos >= len(sess.batch) {
		return models.StudyPair{}, false
	}
	pair := sess.batch[sess.pos]
	sess.pos++
	return pair, true
}

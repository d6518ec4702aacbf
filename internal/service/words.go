package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// WordStore owns a user's word list and persists it under repository.KeyWords
type WordStore struct {
	store    repository.KeyValueStore
	userID   int64
	clock    Clock
	notifier domain.Notifier
	logger   *zap.Logger

	mu     sync.RWMutex
	words  []domain.Word
	lastID int64
}

// NewWordStore creates an empty word store; call Load to restore saved words
func NewWordStore(
	store repository.KeyValueStore,
	userID int64,
	clock Clock,
	notifier domain.Notifier,
	logger *zap.Logger,
) *WordStore {
	return &WordStore{
		store:    store,
		userID:   userID,
		clock:    clock,
		notifier: notifier,
		logger:   logger.With(zap.Int64("user_id", userID)),
	}
}

// Load restores the saved word list. A missing or corrupt record leaves the
// list empty.
func (s *WordStore) Load(ctx context.Context) {
	raw, found, err := s.store.Get(ctx, s.userID, repository.KeyWords)
	if err != nil {
		s.logger.Warn("Failed to load words", zap.Error(err))
		return
	}
	if !found {
		return
	}

	var words []domain.Word
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		s.logger.Warn("Ignoring unreadable word list", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = words
	s.lastID = 0
	for _, w := range words {
		if w.ID > s.lastID {
			s.lastID = w.ID
		}
	}
}

// Add validates and appends a new word pair
func (s *WordStore) Add(ctx context.Context, english, turkish string) (domain.Word, error) {
	english = strings.TrimSpace(english)
	turkish = strings.TrimSpace(turkish)
	if english == "" || turkish == "" {
		return domain.Word{}, domain.ErrEmptyField
	}

	s.mu.Lock()
	for _, w := range s.words {
		if w.SameEnglish(english) {
			s.mu.Unlock()
			return domain.Word{}, domain.ErrDuplicateWord
		}
	}

	now := s.clock.Now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	word := domain.Word{
		ID:        id,
		English:   english,
		Turkish:   turkish,
		CreatedAt: now.UTC(),
	}
	s.words = append(s.words, word)
	count := len(s.words)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.Info("Word added", zap.Int64("word_id", id), zap.String("english", english))
	s.notifier.Notify(domain.Event{Type: domain.EventWordListChanged, WordCount: count})
	return word, nil
}

// Remove deletes the word with the given id; it reports whether one was removed
func (s *WordStore) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()
	idx := -1
	for i, w := range s.words {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	s.words = append(s.words[:idx], s.words[idx+1:]...)
	count := len(s.words)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.Info("Word removed", zap.Int64("word_id", id))
	s.notifier.Notify(domain.Event{Type: domain.EventWordListChanged, WordCount: count})
	return true
}

// All returns a copy of the words in insertion order
func (s *WordStore) All() []domain.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words := make([]domain.Word, len(s.words))
	copy(words, s.words)
	return words
}

// Get returns the word with the given id
func (s *WordStore) Get(id int64) (domain.Word, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.words {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Word{}, false
}

// Count returns the number of stored words
func (s *WordStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Flush writes the word list if it is not empty
func (s *WordStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.words) == 0 {
		return nil
	}
	return s.saveLocked(ctx)
}

func (s *WordStore) persistLocked(ctx context.Context) {
	if err := s.saveLocked(ctx); err != nil {
		s.logger.Warn("Failed to persist words", zap.Error(err))
	}
}

func (s *WordStore) saveLocked(ctx context.Context) error {
	words := s.words
	if words == nil {
		words = []domain.Word{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	return s.store.Set(ctx, s.userID, repository.KeyWords, string(data))
}

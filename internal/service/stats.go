package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// StatsTracker owns the running quiz totals and persists them under
// repository.KeyStats after every change
type StatsTracker struct {
	store  repository.KeyValueStore
	userID int64
	logger *zap.Logger

	mu    sync.Mutex
	stats domain.Stats
}

// NewStatsTracker creates a tracker with zero totals
func NewStatsTracker(store repository.KeyValueStore, userID int64, logger *zap.Logger) *StatsTracker {
	return &StatsTracker{
		store:  store,
		userID: userID,
		logger: logger.With(zap.Int64("user_id", userID)),
	}
}

// Load restores saved totals; a corrupt record is treated as absent
func (t *StatsTracker) Load(ctx context.Context) {
	raw, found, err := t.store.Get(ctx, t.userID, repository.KeyStats)
	if err != nil {
		t.logger.Warn("Failed to load stats", zap.Error(err))
		return
	}
	if !found {
		return
	}

	var stats domain.Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		t.logger.Warn("Ignoring unreadable stats", zap.Error(err))
		return
	}

	t.mu.Lock()
	t.stats = stats
	t.mu.Unlock()
}

// Reset zeroes all counters
func (t *StatsTracker) Reset(ctx context.Context) {
	t.update(ctx, func(s *domain.Stats) {
		*s = domain.Stats{}
	})
}

// RecordCorrect counts a correct answer
func (t *StatsTracker) RecordCorrect(ctx context.Context) {
	t.update(ctx, func(s *domain.Stats) {
		s.TotalQuestions++
		s.CorrectAnswers++
	})
}

// RecordWrong counts a wrong answer
func (t *StatsTracker) RecordWrong(ctx context.Context) {
	t.update(ctx, func(s *domain.Stats) {
		s.TotalQuestions++
		s.WrongAnswers++
	})
}

// Snapshot returns the current totals
func (t *StatsTracker) Snapshot() domain.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Accuracy returns the rounded percentage of correct answers
func (t *StatsTracker) Accuracy() int {
	return t.Snapshot().Accuracy()
}

// Flush writes the current totals
func (t *StatsTracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveLocked(ctx)
}

func (t *StatsTracker) update(ctx context.Context, fn func(s *domain.Stats)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fn(&t.stats)
	if err := t.saveLocked(ctx); err != nil {
		t.logger.Warn("Failed to persist stats", zap.Error(err))
	}
}

func (t *StatsTracker) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(t.stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return t.store.Set(ctx, t.userID, repository.KeyStats, string(data))
}

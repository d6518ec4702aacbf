package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// Trainer bundles one user's words, stats, quiz and theme
type Trainer struct {
	UserID int64
	Words  *WordStore
	Stats  *StatsTracker
	Quiz   *QuizEngine
	Theme  *ThemeService
}

// Flush saves words and stats. Nothing is written while the word list is
// empty.
func (t *Trainer) Flush(ctx context.Context) error {
	if t.Words.Count() == 0 {
		return nil
	}
	return errors.Join(t.Words.Flush(ctx), t.Stats.Flush(ctx))
}

// TrainerOptions configures trainers created by a Registry
type TrainerOptions struct {
	Clock       Clock
	Scheduler   Scheduler
	NewRandom   func() Random
	AnswerDelay time.Duration
}

// NotifierFactory returns the event sink for a user's trainer
type NotifierFactory func(userID int64) domain.Notifier

// Registry lazily creates and loads one Trainer per user
type Registry struct {
	store     repository.KeyValueStore
	notifiers NotifierFactory
	opts      TrainerOptions
	logger    *zap.Logger

	mu       sync.Mutex
	trainers map[int64]*trainerEntry
}

// trainerEntry loads its trainer once, outside the registry lock
type trainerEntry struct {
	once    sync.Once
	trainer *Trainer
}

// NewRegistry creates an empty trainer registry
func NewRegistry(
	store repository.KeyValueStore,
	notifiers NotifierFactory,
	opts TrainerOptions,
	logger *zap.Logger,
) *Registry {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler
	}
	if opts.NewRandom == nil {
		opts.NewRandom = NewRandom
	}
	if notifiers == nil {
		notifiers = func(int64) domain.Notifier { return domain.NopNotifier }
	}

	return &Registry{
		store:     store,
		notifiers: notifiers,
		opts:      opts,
		logger:    logger,
		trainers:  make(map[int64]*trainerEntry),
	}
}

// Get returns the user's trainer, loading saved state on first use.
// Concurrent first calls for one user share a single load.
func (r *Registry) Get(ctx context.Context, userID int64) *Trainer {
	r.mu.Lock()
	entry, ok := r.trainers[userID]
	if !ok {
		entry = &trainerEntry{}
		r.trainers[userID] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		t := r.load(ctx, userID)
		r.mu.Lock()
		entry.trainer = t
		r.mu.Unlock()
	})
	return entry.trainer
}

func (r *Registry) load(ctx context.Context, userID int64) *Trainer {
	notifier := r.notifiers(userID)
	words := NewWordStore(r.store, userID, r.opts.Clock, notifier, r.logger)
	stats := NewStatsTracker(r.store, userID, r.logger)
	words.Load(ctx)
	stats.Load(ctx)

	t := &Trainer{
		UserID: userID,
		Words:  words,
		Stats:  stats,
		Quiz: NewQuizEngine(words, stats, QuizOptions{
			Random:      r.opts.NewRandom(),
			Scheduler:   r.opts.Scheduler,
			Notifier:    notifier,
			Logger:      r.logger.With(zap.Int64("user_id", userID)),
			AnswerDelay: r.opts.AnswerDelay,
		}),
		Theme: NewThemeService(r.store, userID, r.logger),
	}

	r.logger.Info("Trainer loaded",
		zap.Int64("user_id", userID),
		zap.Int("words", words.Count()),
	)
	return t
}

// loaded returns the trainers whose load has finished
func (r *Registry) loaded() []*Trainer {
	r.mu.Lock()
	defer r.mu.Unlock()

	trainers := make([]*Trainer, 0, len(r.trainers))
	for _, entry := range r.trainers {
		if entry.trainer != nil {
			trainers = append(trainers, entry.trainer)
		}
	}
	return trainers
}

// FlushAll saves every loaded trainer. Failures are logged and the first
// error is returned after all trainers were tried.
func (r *Registry) FlushAll(ctx context.Context) error {
	var firstErr error
	for _, t := range r.loaded() {
		if err := t.Flush(ctx); err != nil {
			r.logger.Error("Failed to flush trainer", zap.Int64("user_id", t.UserID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// StopAll stops running quizzes, used on shutdown. Summaries are sent
// without holding the registry lock.
func (r *Registry) StopAll(ctx context.Context) {
	for _, t := range r.loaded() {
		t.Quiz.Stop(ctx)
	}
}

package service

import (
	"context"
	"sync"
	"time"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
)

// DefaultAnswerDelay is the pause between feedback and the next question
const DefaultAnswerDelay = time.Second

// QuizOptions configures a QuizEngine. Zero fields fall back to defaults.
type QuizOptions struct {
	Random      Random
	Scheduler   Scheduler
	Notifier    domain.Notifier
	Logger      *zap.Logger
	AnswerDelay time.Duration
}

// QuizEngine runs quiz sessions over a WordStore.
//
// Questions are drawn uniformly from the live word list on every step, with
// replacement, so a session only ends on Stop or when the list becomes empty.
type QuizEngine struct {
	words     *WordStore
	stats     *StatsTracker
	rng       Random
	scheduler Scheduler
	notifier  domain.Notifier
	logger    *zap.Logger
	delay     time.Duration

	mu      sync.Mutex
	state   domain.GameState
	session uint64
	// shuffled copy of the words at start; selection does not read it
	sessionWords []domain.Word
	current      *domain.Word
	locked       bool
	cancel       func()
}

// NewQuizEngine creates a stopped engine
func NewQuizEngine(words *WordStore, stats *StatsTracker, opts QuizOptions) *QuizEngine {
	if opts.Random == nil {
		opts.Random = NewRandom()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler
	}
	if opts.Notifier == nil {
		opts.Notifier = domain.NopNotifier
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.AnswerDelay <= 0 {
		opts.AnswerDelay = DefaultAnswerDelay
	}

	return &QuizEngine{
		words:     words,
		stats:     stats,
		rng:       opts.Random,
		scheduler: opts.Scheduler,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		delay:     opts.AnswerDelay,
		state:     domain.GameStopped,
	}
}

// Start begins a new session and asks the first question. A running
// session is left untouched and ErrAlreadyPlaying is returned.
func (e *QuizEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state == domain.GamePlaying {
		e.mu.Unlock()
		return domain.ErrAlreadyPlaying
	}
	if e.words.Count() == 0 {
		e.mu.Unlock()
		e.notifier.Notify(domain.Event{Type: domain.EventNotification, Err: domain.ErrNoWordsAvailable})
		return domain.ErrNoWordsAvailable
	}

	e.cancelPendingLocked()
	e.session++
	e.state = domain.GamePlaying
	e.stats.Reset(ctx)
	e.sessionWords = e.shuffledWordsLocked()
	e.current = nil
	e.locked = false
	sessionSize := len(e.sessionWords)

	events := []domain.Event{{Type: domain.EventStatsChanged, Stats: e.stats.Snapshot()}}
	events = append(events, e.nextQuestionLocked()...)
	e.mu.Unlock()

	e.logger.Info("Quiz started", zap.Int("words", sessionSize))
	e.emit(events)
	return nil
}

// SubmitAnswer scores input against the current question. It reports false
// when no answer is accepted: the engine is stopped or waiting for the next
// question.
func (e *QuizEngine) SubmitAnswer(ctx context.Context, input string) (domain.Feedback, bool) {
	e.mu.Lock()
	if e.state != domain.GamePlaying || e.locked || e.current == nil {
		e.mu.Unlock()
		return domain.Feedback{}, false
	}

	word := *e.current
	correct := domain.MatchAnswer(word, input)
	if correct {
		e.stats.RecordCorrect(ctx)
	} else {
		e.stats.RecordWrong(ctx)
	}
	feedback := domain.NewFeedback(word, correct)

	e.locked = true
	session := e.session
	e.cancel = e.scheduler.AfterFunc(e.delay, func() {
		e.advance(session)
	})

	events := []domain.Event{
		{Type: domain.EventFeedback, Feedback: feedback, Stats: e.stats.Snapshot()},
		{Type: domain.EventStatsChanged, Stats: e.stats.Snapshot()},
	}
	e.mu.Unlock()

	e.emit(events)
	return feedback, true
}

// Stop ends the running session and returns its totals. It reports false if
// no session was running.
func (e *QuizEngine) Stop(ctx context.Context) (domain.Stats, bool) {
	e.mu.Lock()
	if e.state != domain.GamePlaying {
		e.mu.Unlock()
		return domain.Stats{}, false
	}
	events := e.stopLocked()
	e.mu.Unlock()

	stats := events[0].Stats
	e.logger.Info("Quiz stopped",
		zap.Int("total", stats.TotalQuestions),
		zap.Int("correct", stats.CorrectAnswers),
	)
	e.emit(events)
	return stats, true
}

// CurrentQuestion returns the word being asked
func (e *QuizEngine) CurrentQuestion() (domain.Word, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != domain.GamePlaying || e.current == nil {
		return domain.Word{}, false
	}
	return *e.current, true
}

// State returns the session state
func (e *QuizEngine) State() domain.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Playing reports whether a session is running
func (e *QuizEngine) Playing() bool {
	return e.State() == domain.GamePlaying
}

// AcceptingAnswers reports whether SubmitAnswer would score an answer now
func (e *QuizEngine) AcceptingAnswers() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == domain.GamePlaying && !e.locked && e.current != nil
}

// LiveStats returns the totals of the current or last session
func (e *QuizEngine) LiveStats() domain.Stats {
	return e.stats.Snapshot()
}

func (e *QuizEngine) advance(session uint64) {
	e.mu.Lock()
	if e.state != domain.GamePlaying || e.session != session {
		e.mu.Unlock()
		return
	}
	e.cancel = nil
	events := e.nextQuestionLocked()
	e.mu.Unlock()

	e.emit(events)
}

func (e *QuizEngine) nextQuestionLocked() []domain.Event {
	words := e.words.All()
	if len(words) == 0 {
		e.logger.Info("No words left, stopping quiz")
		return e.stopLocked()
	}

	word := words[e.rng.Intn(len(words))]
	e.current = &word
	e.locked = false
	return []domain.Event{{Type: domain.EventQuestionShown, Question: word.English}}
}

func (e *QuizEngine) stopLocked() []domain.Event {
	e.cancelPendingLocked()
	e.session++
	e.state = domain.GameStopped
	e.sessionWords = nil
	e.current = nil
	e.locked = false
	return []domain.Event{{Type: domain.EventSessionSummary, Stats: e.stats.Snapshot()}}
}

func (e *QuizEngine) cancelPendingLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *QuizEngine) shuffledWordsLocked() []domain.Word {
	words := e.words.All()
	e.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return words
}

func (e *QuizEngine) emit(events []domain.Event) {
	for _, ev := range events {
		e.notifier.Notify(ev)
	}
}

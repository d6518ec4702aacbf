package testutil

import (
	"sync"
	"time"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word
func NewTestWord(id int64, english, turkish string) domain.Word {
	return domain.Word{
		ID:        id,
		English:   english,
		Turkish:   turkish,
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// FakeClock returns a fixed time that tests move by hand
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock stopped at now
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakeScheduler queues scheduled funcs until Fire is called
type FakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

type fakeTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &fakeTask{delay: d, fn: f}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.cancelled = true
	}
}

// Pending returns the number of queued, non-cancelled tasks
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently scheduled task
func (s *FakeScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return 0
	}
	return s.tasks[len(s.tasks)-1].delay
}

// Fire runs every queued task, including cancelled ones when force is set,
// and empties the queue
func (s *FakeScheduler) Fire(force bool) {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, t := range tasks {
		if t.cancelled && !force {
			continue
		}
		t.fn()
	}
}

// SeqRandom returns queued indexes in order, then zero. Shuffle reverses.
type SeqRandom struct {
	mu      sync.Mutex
	Indexes []int
	Calls   int
}

func (r *SeqRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	if len(r.Indexes) == 0 {
		return 0
	}
	i := r.Indexes[0]
	r.Indexes = r.Indexes[1:]
	return i % n
}

func (r *SeqRandom) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

// RecordingNotifier keeps every event it receives
type RecordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *RecordingNotifier) Notify(ev domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

// Events returns a copy of the recorded events
func (n *RecordingNotifier) Events() []domain.Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	events := make([]domain.Event, len(n.events))
	copy(events, n.events)
	return events
}

// OfType returns recorded events of one type
func (n *RecordingNotifier) OfType(t domain.EventType) []domain.Event {
	var out []domain.Event
	for _, ev := range n.Events() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset forgets recorded events
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}

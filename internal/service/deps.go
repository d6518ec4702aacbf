package service

import (
	"math/rand"
	"time"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// Random picks quiz questions. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Scheduler runs f once after d. The returned func cancels a run that has
// not started yet.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock
var SystemClock Clock = systemClock{}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// TimerScheduler schedules with time.AfterFunc
var TimerScheduler Scheduler = timerScheduler{}

// NewRandom returns a time-seeded source. It is not safe for concurrent use.
func NewRandom() Random {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

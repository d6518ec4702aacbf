package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(store repository.KeyValueStore, notifiers NotifierFactory) *Registry {
	return NewRegistry(store, notifiers, TrainerOptions{
		Clock:     testutil.NewFakeClock(testNow),
		Scheduler: &testutil.FakeScheduler{},
		NewRandom: func() Random { return &testutil.SeqRandom{} },
	}, testutil.NewTestLogger())
}

func TestRegistry_GetLoadsSavedState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Set(ctx, 5, repository.KeyWords,
		`[{"id":1,"english":"cat","turkish":"kedi","createdAt":"2025-01-01T00:00:00Z"}]`))
	require.NoError(t, store.Set(ctx, 5, repository.KeyStats,
		`{"totalQuestions":4,"correctAnswers":3,"wrongAnswers":1}`))

	registry := newTestRegistry(store, nil)

	trainer := registry.Get(ctx, 5)

	assert.Equal(t, int64(5), trainer.UserID)
	assert.Equal(t, 1, trainer.Words.Count())
	assert.Equal(t, 75, trainer.Stats.Accuracy())
	assert.Same(t, trainer, registry.Get(ctx, 5))
	assert.Equal(t, 0, registry.Get(ctx, 6).Words.Count())
}

func TestRegistry_RoutesEventsPerUser(t *testing.T) {
	ctx := context.Background()
	recorders := map[int64]*testutil.RecordingNotifier{
		1: {},
		2: {},
	}
	registry := newTestRegistry(memory.NewKVStore(), func(userID int64) domain.Notifier {
		return recorders[userID]
	})

	_, err := registry.Get(ctx, 1).Words.Add(ctx, "cat", "kedi")
	require.NoError(t, err)

	assert.Len(t, recorders[1].Events(), 1)
	assert.Empty(t, recorders[2].Events())
}

func TestRegistry_FlushAll(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	registry := newTestRegistry(store, nil)

	trainer := registry.Get(ctx, 1)
	_, err := trainer.Words.Add(ctx, "cat", "kedi")
	require.NoError(t, err)
	registry.Get(ctx, 2)

	require.NoError(t, store.Delete(ctx, 1, repository.KeyWords))
	require.NoError(t, registry.FlushAll(ctx))

	_, found, _ := store.Get(ctx, 1, repository.KeyWords)
	assert.True(t, found)
	_, found, _ = store.Get(ctx, 1, repository.KeyStats)
	assert.True(t, found)
	_, found, _ = store.Get(ctx, 2, repository.KeyWords)
	assert.False(t, found, "empty trainers are not written")
}

func TestRegistry_FlushAllReportsErrors(t *testing.T) {
	ctx := context.Background()
	store := new(testutil.MockKeyValueStore)
	store.On("Get", mock.Anything, int64(1), mock.Anything).Return("", false, nil)
	store.On("Set", mock.Anything, int64(1), repository.KeyWords, mock.Anything).Return(nil).Once()
	store.On("Set", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(fmt.Errorf("db down"))

	registry := newTestRegistry(store, nil)
	_, err := registry.Get(ctx, 1).Words.Add(ctx, "cat", "kedi")
	require.NoError(t, err)

	assert.Error(t, registry.FlushAll(ctx))
}

func TestRegistry_StopAll(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(memory.NewKVStore(), nil)

	trainer := registry.Get(ctx, 1)
	_, err := trainer.Words.Add(ctx, "cat", "kedi")
	require.NoError(t, err)
	require.NoError(t, trainer.Quiz.Start(ctx))

	registry.StopAll(ctx)

	assert.Equal(t, domain.GameStopped, trainer.Quiz.State())
}

func TestRegistry_StopAllReleasesLockBeforeNotifying(t *testing.T) {
	ctx := context.Background()
	var registry *Registry
	notified := make(chan struct{}, 1)
	registry = newTestRegistry(memory.NewKVStore(), func(int64) domain.Notifier {
		return domain.NotifierFunc(func(ev domain.Event) {
			if ev.Type == domain.EventSessionSummary {
				registry.Get(ctx, 2)
				notified <- struct{}{}
			}
		})
	})

	trainer := registry.Get(ctx, 1)
	_, err := trainer.Words.Add(ctx, "cat", "kedi")
	require.NoError(t, err)
	require.NoError(t, trainer.Quiz.Start(ctx))

	done := make(chan struct{})
	go func() {
		registry.StopAll(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StopAll did not return")
	}
	assert.Len(t, notified, 1)
}

// blockingStore holds reads for one user until release is closed
type blockingStore struct {
	*memory.KVStore
	userID  int64
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *blockingStore) Get(ctx context.Context, userID int64, key string) (string, bool, error) {
	if userID == s.userID {
		s.once.Do(func() { close(s.started) })
		<-s.release
	}
	return s.KVStore.Get(ctx, userID, key)
}

func TestRegistry_GetLoadsUsersIndependently(t *testing.T) {
	ctx := context.Background()
	store := &blockingStore{
		KVStore: memory.NewKVStore(),
		userID:  1,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	registry := newTestRegistry(store, nil)

	results := make(chan *Trainer, 2)
	for i := 0; i < 2; i++ {
		go func() { results <- registry.Get(ctx, 1) }()
	}
	<-store.started

	other := make(chan *Trainer, 1)
	go func() { other <- registry.Get(ctx, 2) }()

	select {
	case trainer := <-other:
		assert.Equal(t, int64(2), trainer.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("a slow load blocked another user")
	}

	close(store.release)
	first, second := <-results, <-results
	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Same(t, first, registry.Get(ctx, 1))
}

package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primes-services/primes-intent/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewMemoryStore(), logger.NewTestLogger(t))
}

func TestGetOrCreateGeneratesSessionID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state, err := store.GetOrCreate(ctx, "", "particulier", "wallonie")
	require.NoError(t, err)

	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, StatusActive, state.Status)
	assert.Equal(t, "particulier", state.UserType)
	assert.Equal(t, "wallonie", state.UserRegion)
	assert.Empty(t, state.Messages)
	assert.False(t, state.CreatedAt.IsZero())
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.GetOrCreate(ctx, "session-1", "particulier", "wallonie")
	require.NoError(t, err)

	require.NoError(t, store.AppendMessage(ctx, "session-1", RoleUser, "bonjour", nil))

	second, err := store.GetOrCreate(ctx, "session-1", "acp", "flandre")
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, "particulier", second.UserType, "existing session keeps its profile")
	assert.Equal(t, 1, second.MessageCount())
}

func TestAppendMessageUnknownSession(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendMessage(context.Background(), "missing", RoleUser, "bonjour", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendMessageReadYourWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "session-1", "", "")
	require.NoError(t, err)

	require.NoError(t, store.AppendMessage(ctx, "session-1", RoleUser, "bonjour", nil))
	require.NoError(t, store.AppendMessage(ctx, "session-1", RoleAssistant, "Bonjour !", map[string]interface{}{
		"intent_category": "information_generale",
	}))

	history, err := store.History(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.Equal(t, "information_generale", history[1].Metadata["intent_category"])
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "session-1", "", "")
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			err := store.AppendMessage(ctx, "session-1", RoleUser, fmt.Sprintf("message %d", i), nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	state, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, n, state.MessageCount())
}

func TestSessionLocksAreEvictedWhenIdle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("session-%d", i)
		_, err := store.GetOrCreate(ctx, id, "", "")
		require.NoError(t, err)
		require.NoError(t, store.AppendMessage(ctx, id, RoleUser, "bonjour", nil))
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := store.AppendMessage(ctx, "session-0", RoleUser, fmt.Sprintf("message %d", i), nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Lock entries live only while a writer holds or waits on them.
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.locks)
}

func TestResetClearsLogAndReactivates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "session-1", "particulier", "wallonie")
	require.NoError(t, err)
	require.NoError(t, store.AppendMessage(ctx, "session-1", RoleUser, "bonjour", nil))
	require.NoError(t, store.Complete(ctx, "session-1"))

	require.NoError(t, store.Reset(ctx, "session-1"))

	state, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, state.Status)
	assert.Equal(t, 0, state.MessageCount())

	require.NoError(t, store.AppendMessage(ctx, "session-1", RoleUser, "re-bonjour", nil))
	state, err = store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.MessageCount())
}

func TestResetUnknownSession(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.Reset(context.Background(), "missing"), ErrNotFound)
}

func TestStatusTransitionsAreMonotone(t *testing.T) {
	ctx := context.Background()

	t.Run("completed stays completed", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.GetOrCreate(ctx, "session-1", "", "")
		require.NoError(t, err)

		require.NoError(t, store.Complete(ctx, "session-1"))
		assert.Error(t, store.Complete(ctx, "session-1"))
		assert.Error(t, store.Archive(ctx, "session-1"))
	})

	t.Run("archived stays archived", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.GetOrCreate(ctx, "session-1", "", "")
		require.NoError(t, err)

		require.NoError(t, store.Archive(ctx, "session-1"))
		assert.Error(t, store.Complete(ctx, "session-1"))
	})

	t.Run("unknown session", func(t *testing.T) {
		store := newTestStore(t)
		assert.ErrorIs(t, store.Complete(ctx, "missing"), ErrNotFound)
	})
}

func TestProfileCountsUserMessages(t *testing.T) {
	state := &State{
		SessionID:  "session-1",
		UserType:   "acp",
		UserRegion: "bruxelles",
		Messages: []Message{
			{Role: RoleUser, Content: "q1"},
			{Role: RoleAssistant, Content: "a1"},
			{Role: RoleUser, Content: "q2"},
		},
	}

	profile := state.Profile()
	assert.Equal(t, 2, profile.InteractionCount)
	assert.Equal(t, "acp", string(profile.UserType))
	assert.Equal(t, "bruxelles", string(profile.Region))
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "session-1", "particulier", "wallonie")
	require.NoError(t, err)
	require.NoError(t, store.AppendMessage(ctx, "session-1", RoleUser, "bonjour", nil))

	stats, err := store.Stats(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "session-1", stats.SessionID)
	assert.Equal(t, 1, stats.MessageCount)
	assert.Equal(t, StatusActive, stats.Status)
	assert.Equal(t, "particulier", stats.UserType)
	assert.GreaterOrEqual(t, stats.DurationMinutes, 0.0)

	_, err = store.Stats(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

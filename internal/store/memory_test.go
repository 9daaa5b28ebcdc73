package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	s, err := game.NewSession("APPLE")
	require.NoError(t, err)
	id, err := st.Create(ctx, s)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	err = st.With(ctx, id, func(got *game.Session) error {
		assert.Same(t, s, got)
		_, _, err := got.SubmitGuess("HELPS")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Attempts())

	err = st.With(ctx, "unknown", func(*game.Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SweepDropsIdleSessions(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	st := &memory{sessions: make(map[string]*entry), now: func() time.Time { return clock }}

	idle, err := game.NewSession("APPLE")
	require.NoError(t, err)
	idleID, err := st.Create(ctx, idle)
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	active, err := game.NewSession("CRANE")
	require.NoError(t, err)
	activeID, err := st.Create(ctx, active)
	require.NoError(t, err)

	// Using a session refreshes it.
	clock = clock.Add(time.Hour)
	require.NoError(t, st.With(ctx, activeID, func(*game.Session) error { return nil }))

	assert.Equal(t, 1, st.Sweep(ctx, clock.Add(-30*time.Minute)))
	assert.ErrorIs(t, st.With(ctx, idleID, func(*game.Session) error { return nil }), ErrNotFound)
	assert.NoError(t, st.With(ctx, activeID, func(*game.Session) error { return nil }))

	assert.Equal(t, 0, st.Sweep(ctx, clock.Add(-30*time.Minute)))
}

func TestMemoryStore_SerialisesAccess(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, err := game.NewSession("APPLE")
	require.NoError(t, err)
	id, err := st.Create(ctx, s)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.With(ctx, id, func(s *game.Session) error {
				_, _, err := s.SubmitGuess("ZZZZZ")
				return err
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, game.MaxAttempts, s.Attempts())
	assert.Equal(t, game.Lost, s.State())
}

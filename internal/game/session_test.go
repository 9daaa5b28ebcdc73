package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, secret string) *Session {
	t.Helper()
	s, err := NewSession(secret)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, "apple")
	assert.Equal(t, InProgress, s.State())
	assert.Equal(t, 0, s.Attempts())
	assert.Equal(t, MaxAttempts, s.MaxAttempts())
	assert.Empty(t, s.History())
	assert.Empty(t, s.Render())

	_, ok := s.Secret()
	assert.False(t, ok, "secret must stay hidden while playing")
}

func TestNewSession_InvalidSecret(t *testing.T) {
	_, err := NewSession("APP")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSubmitGuess_InvalidDoesNotConsumeAttempt(t *testing.T) {
	s := newTestSession(t, "APPLE")

	for _, bad := range []string{"ABC", "APPLES", "12345", ""} {
		vs, state, err := s.SubmitGuess(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
		assert.Nil(t, vs)
		assert.Equal(t, InProgress, state)
	}
	assert.Equal(t, 0, s.Attempts())
	assert.Empty(t, s.History())
}

func TestSubmitGuess_Win(t *testing.T) {
	s := newTestSession(t, "APPLE")

	vs, state, err := s.SubmitGuess("HELPS")
	require.NoError(t, err)
	assert.Equal(t, "_YYY_", vs.String())
	assert.Equal(t, InProgress, state)

	vs, state, err = s.SubmitGuess("apple")
	require.NoError(t, err)
	assert.True(t, IsAllExact(vs))
	assert.Equal(t, Won, state)
	assert.Equal(t, 2, s.Attempts())

	board := s.Render()
	assert.Equal(t, "Guess 1: HELPS\nResult: _YYY_\nGuess 2: APPLE\nResult: GGGGG\n", board)
	assert.Len(t, strings.Split(strings.TrimSpace(board), "\n"), 4)

	secret, ok := s.Secret()
	assert.True(t, ok)
	assert.Equal(t, Word("APPLE"), secret)
}

func TestSubmitGuess_LoseAfterBudget(t *testing.T) {
	s := newTestSession(t, "APPLE")

	for i := 1; i <= MaxAttempts; i++ {
		_, state, err := s.SubmitGuess("ZZZZZ")
		require.NoError(t, err)
		if i < MaxAttempts {
			assert.Equal(t, InProgress, state, "attempt %d", i)
			_, ok := s.Secret()
			assert.False(t, ok)
		} else {
			assert.Equal(t, Lost, state)
		}
	}
	assert.Equal(t, MaxAttempts, s.Attempts())
	assert.Contains(t, s.Render(), "Guess 6: ZZZZZ")

	secret, ok := s.Secret()
	assert.True(t, ok)
	assert.Equal(t, Word("APPLE"), secret)
}

func TestSubmitGuess_WinOnLastAttempt(t *testing.T) {
	s := newTestSession(t, "APPLE")
	for i := 0; i < MaxAttempts-1; i++ {
		_, _, err := s.SubmitGuess("CRANE")
		require.NoError(t, err)
	}
	_, state, err := s.SubmitGuess("APPLE")
	require.NoError(t, err)
	assert.Equal(t, Won, state)
}

func TestSubmitGuess_TerminalIsIllegal(t *testing.T) {
	for _, tc := range []struct {
		name    string
		guesses []string
	}{
		{"won", []string{"APPLE"}},
		{"lost", []string{"ZZZZZ", "ZZZZZ", "ZZZZZ", "ZZZZZ", "ZZZZZ", "ZZZZZ"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, "APPLE")
			for _, g := range tc.guesses {
				_, _, err := s.SubmitGuess(g)
				require.NoError(t, err)
			}
			before := s.History()
			state := s.State()

			vs, got, err := s.SubmitGuess("APPLE")
			assert.ErrorIs(t, err, ErrIllegalState)
			assert.Nil(t, vs)
			assert.Equal(t, state, got)
			assert.Equal(t, before, s.History())
		})
	}
}

func TestHistory_IsCopy(t *testing.T) {
	s := newTestSession(t, "APPLE")
	vs, _, err := s.SubmitGuess("HELPS")
	require.NoError(t, err)

	vs[0] = Exact
	h := s.History()
	h[0].Guess = "XXXXX"
	h[0].Verdicts[1] = Exact

	assert.Equal(t, Word("HELPS"), s.History()[0].Guess)
	assert.Equal(t, "_YYY_", s.History()[0].Verdicts.String())
	assert.Equal(t, "Guess 1: HELPS\nResult: _YYY_\n", s.Render())
}

func TestRuledOut(t *testing.T) {
	s := newTestSession(t, "APPLE")
	_, _, err := s.SubmitGuess("HELPS")
	require.NoError(t, err)
	assert.Equal(t, []byte("HS"), s.RuledOut())

	// E scores Absent at 0..2 but Exact at 4, so it is not ruled out.
	_, _, err = s.SubmitGuess("EERIE")
	require.NoError(t, err)
	assert.Equal(t, []byte("HIRS"), s.RuledOut())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "playing", InProgress.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.False(t, InProgress.Terminal())
	assert.True(t, Won.Terminal())
	assert.True(t, Lost.Terminal())
}

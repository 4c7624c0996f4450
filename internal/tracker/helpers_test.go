package tracker

import (
	"alcyxob/win-tracker/internal/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 17, 8, 0, 0, 0, time.UTC)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func validJournal() JournalEntry {
	return JournalEntry{
		Gratitude: [3]string{"health", "family", "coffee"},
		Summary:   words(MinSummaryWords),
		Rating:    8,
	}
}

// startedState returns a state with a saved goal and a fresh plan at t0.
func startedState(t *testing.T) *domain.ChallengeState {
	t.Helper()
	state := domain.NewChallengeState()
	require.NoError(t, SetGoal(state, words(MinGoalWords)))
	_, err := Start(state, t0)
	require.NoError(t, err)
	return state
}

// winDay completes every checklist item of dayIndex.
func winDay(t *testing.T, state *domain.ChallengeState, dayIndex int) {
	t.Helper()
	for _, item := range []domain.ChecklistItem{domain.ItemShower, domain.ItemClean, domain.ItemPushups} {
		_, err := SetChecklistItem(state, dayIndex, item, true)
		require.NoError(t, err)
	}
	res, err := SubmitJournal(state, dayIndex, validJournal())
	require.NoError(t, err)
	require.True(t, res.AutoWon)
}

// assertLedgerInvariants checks the ledger properties that must hold after
// any sequence of operations.
func assertLedgerInvariants(t *testing.T, state *domain.ChallengeState) {
	t.Helper()
	l := state.Ledger
	require.False(t, l.CurrentWinStreak > 0 && l.CurrentLossStreak > 0, "streaks must be exclusive: %+v", l)
	require.GreaterOrEqual(t, l.LongestWinStreak, l.CurrentWinStreak)
	require.NoError(t, Check(state))
}

package tracker

import "alcyxob/win-tracker/internal/domain"

// RecordWin applies a win transition to the ledger.
func RecordWin(l *domain.StreakLedger) {
	l.CurrentWinStreak++
	l.DaysWon++
	if l.CurrentWinStreak > l.LongestWinStreak {
		l.LongestWinStreak = l.CurrentWinStreak
	}
	l.CurrentLossStreak = 0
}

// RecordLoss applies a loss transition to the ledger.
func RecordLoss(l *domain.StreakLedger) {
	l.CurrentLossStreak++
	l.DaysLost++
	l.CurrentWinStreak = 0
}

// RebuildLedger derives the ledger from the day sequence by replaying the
// terminal days in order.
func RebuildLedger(plan *domain.ChallengePlan) domain.StreakLedger {
	var l domain.StreakLedger
	if plan == nil {
		return l
	}
	for _, d := range plan.Days {
		switch d.Status {
		case domain.StatusWin:
			RecordWin(&l)
		case domain.StatusLoss:
			RecordLoss(&l)
		}
	}
	return l
}

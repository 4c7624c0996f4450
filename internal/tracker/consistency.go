package tracker

import (
	"alcyxob/win-tracker/internal/domain"
	"fmt"
	"time"
)

// Check verifies the day sequence (length, statuses, single cursor) and that
// the ledger matches it. Structural problems wrap ErrInconsistentState; a
// ledger that merely disagrees with a valid sequence wraps ErrLedgerOutOfSync
// and can be repaired with Reconcile.
func Check(state *domain.ChallengeState) error {
	if state.Plan == nil {
		if state.Ledger != (domain.StreakLedger{}) {
			return fmt.Errorf("%w: ledger is not empty before start", ErrLedgerOutOfSync)
		}
		return nil
	}

	days := state.Plan.Days
	if len(days) != domain.ChallengeDays {
		return fmt.Errorf("%w: plan has %d days, want %d", ErrInconsistentState, len(days), domain.ChallengeDays)
	}

	// Statuses must read terminal*, then at most one current, then future*.
	const (
		inTerminal = iota
		afterCursor
	)
	phase := inTerminal
	for i, d := range days {
		if !d.Status.IsValid() {
			return fmt.Errorf("%w: day %d has unknown status %q", ErrInconsistentState, i, d.Status)
		}
		if d.PushupTarget != domain.BasePushupTarget+i {
			return fmt.Errorf("%w: day %d pushup target is %d", ErrInconsistentState, i, d.PushupTarget)
		}
		if want := state.Plan.StartDate.AddDate(0, 0, i); !d.Date.Equal(want) {
			return fmt.Errorf("%w: day %d is dated %s, want %s", ErrInconsistentState, i, d.Date.Format(time.RFC3339), want.Format(time.RFC3339))
		}
		if d.Journal.Rating < MinRating || d.Journal.Rating > MaxRating {
			return fmt.Errorf("%w: day %d rating %d not in [%d,%d]", ErrInconsistentState, i, d.Journal.Rating, MinRating, MaxRating)
		}
		switch {
		case d.Status.IsTerminal():
			if phase != inTerminal {
				return fmt.Errorf("%w: day %d is %s after the cursor", ErrInconsistentState, i, d.Status)
			}
		case d.Status == domain.StatusCurrent:
			if phase != inTerminal {
				return fmt.Errorf("%w: more than one current day (day %d)", ErrInconsistentState, i)
			}
			phase = afterCursor
		default:
			if i == 0 {
				return fmt.Errorf("%w: day 0 is still future", ErrInconsistentState)
			}
			// With no current day the cursor can only rest on an auto-won day.
			if days[i-1].Status == domain.StatusLoss {
				return fmt.Errorf("%w: day %d is future after a loss with no current day", ErrInconsistentState, i)
			}
			phase = afterCursor
		}
	}

	if want := RebuildLedger(state.Plan); state.Ledger != want {
		return fmt.Errorf("%w: have %+v, derived %+v", ErrLedgerOutOfSync, state.Ledger, want)
	}
	return nil
}

// Reconcile replaces the ledger with one derived from the day sequence and
// reports whether anything changed.
func Reconcile(state *domain.ChallengeState) bool {
	want := RebuildLedger(state.Plan)
	if state.Ledger == want {
		return false
	}
	state.Ledger = want
	return true
}

// Merge combines a local state with a remote one. The remote plan wins
// wholesale (last write wins) and the ledger is re-derived from the
// resulting days instead of taking per-counter maxima, so the counters can
// never drift from the sequence. To-dos and reminders are unioned by id with
// remote entries taking precedence.
func Merge(local, remote *domain.ChallengeState) *domain.ChallengeState {
	out := local.Clone()
	if out == nil {
		out = domain.NewChallengeState()
	}
	if remote == nil {
		Reconcile(out)
		return out
	}
	r := remote.Clone()

	if r.GoalText != "" {
		out.GoalText = r.GoalText
	}
	if r.Plan != nil {
		out.Plan = r.Plan
	}
	out.Ledger = RebuildLedger(out.Plan)
	out.Todos = mergeTodos(out.Todos, r.Todos)
	out.Reminders = mergeReminders(out.Reminders, r.Reminders)
	return out
}

func mergeTodos(local, remote []domain.Todo) []domain.Todo {
	out := make([]domain.Todo, 0, len(local)+len(remote))
	seen := make(map[string]int, len(local)+len(remote))
	for _, t := range append(local, remote...) {
		if i, ok := seen[t.ID]; ok {
			out[i] = t
			continue
		}
		seen[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}

func mergeReminders(local, remote []domain.Reminder) []domain.Reminder {
	out := make([]domain.Reminder, 0, len(local)+len(remote))
	seen := make(map[string]int, len(local)+len(remote))
	for _, r := range append(local, remote...) {
		if i, ok := seen[r.ID]; ok {
			out[i] = r
			continue
		}
		seen[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}

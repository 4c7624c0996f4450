package tracker

import (
	"alcyxob/win-tracker/internal/domain"
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Start creates the 90-day plan. If a plan already exists it is returned
// untouched, so starting twice never resets progress.
func Start(state *domain.ChallengeState, now time.Time) (*domain.ChallengePlan, error) {
	if state.Plan != nil {
		return state.Plan, nil
	}
	if !CanStartChallenge(state) {
		return nil, validationError("goalText", fmt.Sprintf("save a goal of at least %d words first", MinGoalWords))
	}

	start := now.UTC()
	days := make([]domain.DayRecord, domain.ChallengeDays)
	for i := range days {
		status := domain.StatusFuture
		if i == 0 {
			status = domain.StatusCurrent
		}
		days[i] = domain.DayRecord{
			Date:         start.AddDate(0, 0, i),
			PushupTarget: domain.BasePushupTarget + i,
			Journal:      domain.Journal{Rating: domain.DefaultRating},
			Status:       status,
		}
	}

	state.Plan = &domain.ChallengePlan{StartDate: start, Days: days}
	return state.Plan, nil
}

// CurrentDayIndex is the clock-derived "what day is it" index, for display
// only. It returns -1 before the challenge starts and may be negative or
// past the end if the clock jumps.
func CurrentDayIndex(state *domain.ChallengeState, now time.Time) int {
	if state.Plan == nil {
		return -1
	}
	elapsed := now.Sub(state.Plan.StartDate)
	idx := int(elapsed / day)
	if elapsed < 0 && elapsed%day != 0 {
		idx-- // floor, not truncation
	}
	return idx
}

// ActiveDayIndex returns the day user actions resolve against: the current
// day, or an auto-won day still waiting for its end-day. Returns -1 when
// there is no plan or the challenge is complete.
func ActiveDayIndex(state *domain.ChallengeState) int {
	if state.Plan == nil {
		return -1
	}
	days := state.Plan.Days
	for i, d := range days {
		switch {
		case d.Status == domain.StatusCurrent:
			return i
		case d.Status == domain.StatusFuture:
			// Nothing is current: only an auto-won day can be waiting for
			// its end-day. A loss is always reached through end-day.
			if i > 0 && days[i-1].Status == domain.StatusWin {
				return i - 1
			}
			return -1
		}
	}
	return -1
}

// IsComplete reports whether every day of the plan is terminal.
func IsComplete(state *domain.ChallengeState) bool {
	if state.Plan == nil || len(state.Plan.Days) == 0 {
		return false
	}
	for _, d := range state.Plan.Days {
		if !d.Status.IsTerminal() {
			return false
		}
	}
	return true
}

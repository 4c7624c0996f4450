package tracker

import (
	"alcyxob/win-tracker/internal/domain"
	"strings"
)

// MinGoalWords is the length gate for the 90-day vision statement.
const MinGoalWords = 500

// SetGoal stores the trimmed goal text if it is long enough.
func SetGoal(state *domain.ChallengeState, text string) error {
	trimmed := strings.TrimSpace(text)
	if CountWords(trimmed) < MinGoalWords {
		return validationError("goalText", "goal too short")
	}
	state.GoalText = trimmed
	return nil
}

// CanStartChallenge re-checks the stored goal on every call.
func CanStartChallenge(state *domain.ChallengeState) bool {
	return state.GoalText != "" && CountWords(state.GoalText) >= MinGoalWords
}

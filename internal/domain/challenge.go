package domain

import (
	"time"
)

const (
	ChallengeDays    = 90
	BasePushupTarget = 25
	DefaultRating    = 5
)

// ChallengePlan is the fixed 90-day sequence created when the challenge starts.
type ChallengePlan struct {
	StartDate time.Time   `bson:"startDate" json:"startDate"`
	Days      []DayRecord `bson:"days" json:"days"`
}

// StreakLedger caches win/loss counters derived from day transitions.
// DaysWon and DaysLost always equal the number of win/loss days in the plan.
type StreakLedger struct {
	CurrentWinStreak  int `bson:"currentWinStreak" json:"currentWinStreak"`
	LongestWinStreak  int `bson:"longestWinStreak" json:"longestWinStreak"`
	CurrentLossStreak int `bson:"currentLossStreak" json:"currentLossStreak"`
	DaysWon           int `bson:"daysWon" json:"daysWon"`
	DaysLost          int `bson:"daysLost" json:"daysLost"`
}

// LossWarningActive is true while the user is on a losing streak.
func (l StreakLedger) LossWarningActive() bool {
	return l.CurrentLossStreak >= 1
}

// ChallengeState is the root aggregate exchanged with persistence and sync.
type ChallengeState struct {
	GoalText  string         `bson:"goalText" json:"goalText"`
	Plan      *ChallengePlan `bson:"plan" json:"plan"` // nil until the challenge starts
	Ledger    StreakLedger   `bson:"ledger" json:"ledger"`
	Todos     []Todo         `bson:"todos" json:"todos"`
	Reminders []Reminder     `bson:"reminders" json:"reminders"`
}

// NewChallengeState returns the empty default state.
func NewChallengeState() *ChallengeState {
	return &ChallengeState{
		Todos:     []Todo{},
		Reminders: []Reminder{},
	}
}

// Clone returns a deep copy so callers can hand state across goroutines
// without sharing slices.
func (s *ChallengeState) Clone() *ChallengeState {
	if s == nil {
		return nil
	}
	out := &ChallengeState{
		GoalText:  s.GoalText,
		Ledger:    s.Ledger,
		Todos:     append([]Todo{}, s.Todos...),
		Reminders: append([]Reminder{}, s.Reminders...),
	}
	if s.Plan != nil {
		out.Plan = &ChallengePlan{
			StartDate: s.Plan.StartDate,
			Days:      append([]DayRecord(nil), s.Plan.Days...),
		}
	}
	return out
}

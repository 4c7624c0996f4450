package domain

import (
	"time"
)

// DayStatus tracks where a single day sits in the challenge lifecycle.
type DayStatus string

const (
	StatusFuture  DayStatus = "future"
	StatusCurrent DayStatus = "current" // The one day the workflow operates on
	StatusWin     DayStatus = "win"     // Terminal
	StatusLoss    DayStatus = "loss"    // Terminal
)

// IsTerminal reports whether the status can never change again.
func (s DayStatus) IsTerminal() bool {
	return s == StatusWin || s == StatusLoss
}

// IsValid reports whether s is one of the known statuses.
func (s DayStatus) IsValid() bool {
	switch s {
	case StatusFuture, StatusCurrent, StatusWin, StatusLoss:
		return true
	}
	return false
}

// ChecklistItem names a flag of the daily checklist.
type ChecklistItem string

const (
	ItemShower      ChecklistItem = "shower"
	ItemClean       ChecklistItem = "clean"
	ItemPushups     ChecklistItem = "pushups"
	ItemJournalDone ChecklistItem = "journalDone" // Set only by journal submission
)

// Checklist holds the four daily actions.
type Checklist struct {
	Shower      bool `bson:"shower" json:"shower"`
	Clean       bool `bson:"clean" json:"clean"`
	Pushups     bool `bson:"pushups" json:"pushups"`
	JournalDone bool `bson:"journalDone" json:"journalDone"`
}

// Complete reports whether all four flags are set.
func (c Checklist) Complete() bool {
	return c.Shower && c.Clean && c.Pushups && c.JournalDone
}

// Count returns how many flags are set (0-4), used for the progress bar.
func (c Checklist) Count() int {
	n := 0
	for _, done := range []bool{c.Shower, c.Clean, c.Pushups, c.JournalDone} {
		if done {
			n++
		}
	}
	return n
}

// Journal is the end-of-day reflection.
type Journal struct {
	Gratitude [3]string `bson:"gratitude" json:"gratitude"`
	Summary   string    `bson:"summary" json:"summary"`
	Rating    int       `bson:"rating" json:"rating"` // 1-10
}

// DayRecord is one of the 90 days of a plan.
type DayRecord struct {
	Date         time.Time `bson:"date" json:"date"` // Fixed when the plan is created
	Checklist    Checklist `bson:"checklist" json:"checklist"`
	PushupTarget int       `bson:"pushupTarget" json:"pushupTarget"`
	Journal      Journal   `bson:"journal" json:"journal"`
	Status       DayStatus `bson:"status" json:"status"`
}

package tracker

import (
	"alcyxob/win-tracker/internal/domain"
	"fmt"
	"strings"
)

const (
	MinSummaryWords = 100
	MinRating       = 1
	MaxRating       = 10
)

// DayResult reports the state of a day after a checklist or journal change.
type DayResult struct {
	Index   int              `json:"index"`
	Status  domain.DayStatus `json:"status"`
	AutoWon bool             `json:"autoWon"` // This call completed the checklist
}

// EndDayOutcome says what an end-day call did.
type EndDayOutcome string

const (
	OutcomeWon        EndDayOutcome = "won"
	OutcomeLost       EndDayOutcome = "lost"
	OutcomeAlreadyWon EndDayOutcome = "already_won" // Auto-won earlier; ledger untouched
	OutcomeDeclined   EndDayOutcome = "declined"    // Incomplete day, loss not confirmed; nothing changed
)

// EndDayResult is returned by EndDay.
type EndDayResult struct {
	Index     int              `json:"index"`
	Outcome   EndDayOutcome    `json:"outcome"`
	Status    domain.DayStatus `json:"status"`
	Advanced  bool             `json:"advanced"`
	NextIndex int              `json:"nextIndex"` // -1 when nothing follows
	Complete  bool             `json:"complete"`
}

// JournalEntry is the raw journal form.
type JournalEntry struct {
	Gratitude [3]string
	Summary   string
	Rating    int
}

// SetChecklistItem toggles shower, clean or pushups on the current day and
// auto-wins the day once all four flags are set. journalDone can only be set
// through SubmitJournal.
func SetChecklistItem(state *domain.ChallengeState, dayIndex int, item domain.ChecklistItem, value bool) (DayResult, error) {
	if err := checkRange(dayIndex); err != nil {
		return DayResult{}, err
	}
	switch item {
	case domain.ItemShower, domain.ItemClean, domain.ItemPushups:
	case domain.ItemJournalDone:
		return DayResult{}, fmt.Errorf("%w: %s is set by submitting the journal", ErrInvalidOperation, item)
	default:
		return DayResult{}, validationError("item", fmt.Sprintf("unknown checklist item %q", item))
	}
	d, err := currentDay(state, dayIndex)
	if err != nil {
		return DayResult{}, err
	}

	switch item {
	case domain.ItemShower:
		d.Checklist.Shower = value
	case domain.ItemClean:
		d.Checklist.Clean = value
	case domain.ItemPushups:
		d.Checklist.Pushups = value
	}

	won := autoWin(state, d)
	return DayResult{Index: dayIndex, Status: d.Status, AutoWon: won}, nil
}

// SubmitJournal validates and stores the journal of the current day, marks
// journalDone and auto-wins the day if the checklist is now complete.
func SubmitJournal(state *domain.ChallengeState, dayIndex int, entry JournalEntry) (DayResult, error) {
	if err := checkRange(dayIndex); err != nil {
		return DayResult{}, err
	}
	d, err := currentDay(state, dayIndex)
	if err != nil {
		return DayResult{}, err
	}

	var gratitude [3]string
	for i, g := range entry.Gratitude {
		gratitude[i] = strings.TrimSpace(g)
		if gratitude[i] == "" {
			return DayResult{}, validationError(fmt.Sprintf("gratitude[%d]", i), "required")
		}
	}
	if n := CountWords(entry.Summary); n < MinSummaryWords {
		return DayResult{}, validationError("summary", fmt.Sprintf("needs at least %d words, got %d", MinSummaryWords, n))
	}

	d.Journal = domain.Journal{
		Gratitude: gratitude,
		Summary:   entry.Summary,
		Rating:    clampRating(entry.Rating),
	}
	d.Checklist.JournalDone = true

	won := autoWin(state, d)
	return DayResult{Index: dayIndex, Status: d.Status, AutoWon: won}, nil
}

// EndDay finalizes the active day and moves the cursor to the next one.
// An incomplete day becomes a loss only when confirmLoss is set; otherwise
// the call is declined without touching state.
func EndDay(state *domain.ChallengeState, dayIndex int, confirmLoss bool) (EndDayResult, error) {
	if err := checkRange(dayIndex); err != nil {
		return EndDayResult{}, err
	}
	if err := checkOpen(state, dayIndex); err != nil {
		return EndDayResult{}, err
	}
	if active := ActiveDayIndex(state); dayIndex != active {
		return EndDayResult{}, fmt.Errorf("%w: day %d is not the active day (active is %d)", ErrInvalidOperation, dayIndex, active)
	}

	d := &state.Plan.Days[dayIndex]
	res := EndDayResult{Index: dayIndex, NextIndex: -1}

	switch {
	case d.Status == domain.StatusWin:
		res.Outcome = OutcomeAlreadyWon
	case d.Checklist.Complete():
		d.Status = domain.StatusWin
		RecordWin(&state.Ledger)
		res.Outcome = OutcomeWon
	case !confirmLoss:
		res.Outcome = OutcomeDeclined
		res.Status = d.Status
		return res, nil
	default:
		d.Status = domain.StatusLoss
		RecordLoss(&state.Ledger)
		res.Outcome = OutcomeLost
	}
	res.Status = d.Status

	if next := dayIndex + 1; next < len(state.Plan.Days) {
		state.Plan.Days[next].Status = domain.StatusCurrent
		res.Advanced = true
		res.NextIndex = next
	} else {
		res.Complete = true
	}
	return res, nil
}

func autoWin(state *domain.ChallengeState, d *domain.DayRecord) bool {
	if d.Status != domain.StatusCurrent || !d.Checklist.Complete() {
		return false
	}
	d.Status = domain.StatusWin
	RecordWin(&state.Ledger)
	return true
}

func checkRange(dayIndex int) error {
	if dayIndex < 0 || dayIndex >= domain.ChallengeDays {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, dayIndex, domain.ChallengeDays)
	}
	return nil
}

// checkOpen rejects operations on a missing plan or a finished challenge.
func checkOpen(state *domain.ChallengeState, dayIndex int) error {
	if state.Plan == nil {
		return ErrNotStarted
	}
	if dayIndex >= len(state.Plan.Days) {
		return fmt.Errorf("%w: plan has %d days", ErrOutOfRange, len(state.Plan.Days))
	}
	if IsComplete(state) {
		return ErrChallengeComplete
	}
	return nil
}

// currentDay returns the day at dayIndex if it is the one mutable day.
func currentDay(state *domain.ChallengeState, dayIndex int) (*domain.DayRecord, error) {
	if err := checkOpen(state, dayIndex); err != nil {
		return nil, err
	}
	d := &state.Plan.Days[dayIndex]
	switch d.Status {
	case domain.StatusCurrent:
		return d, nil
	case domain.StatusWin, domain.StatusLoss:
		return nil, fmt.Errorf("%w: day %d is already %s", ErrInvalidOperation, dayIndex, d.Status)
	default:
		return nil, fmt.Errorf("%w: day %d is not active yet", ErrInvalidOperation, dayIndex)
	}
}

func clampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

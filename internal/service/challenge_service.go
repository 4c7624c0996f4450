package service

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/repository"
	"alcyxob/win-tracker/internal/tracker"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var ErrUserIDRequired = errors.New("user ID is required")

// ChallengeView is the state returned to clients together with the values
// derived from it on read.
type ChallengeView struct {
	State           *domain.ChallengeState `json:"state"`
	CurrentDayIndex int                    `json:"currentDayIndex"` // Clock-derived, display only
	ActiveDayIndex  int                    `json:"activeDayIndex"`
	LossWarning     bool                   `json:"lossWarning"`
	CanStart        bool                   `json:"canStart"`
	Complete        bool                   `json:"complete"`
	Revision        int64                  `json:"revision"`
}

// ChallengeService applies tracker operations to a user's stored state.
// Each call loads the snapshot, runs one operation and saves on success,
// holding the user's lock throughout.
type ChallengeService interface {
	GetChallenge(ctx context.Context, userID string) (*ChallengeView, error)
	SetGoal(ctx context.Context, userID, text string) (*ChallengeView, error)
	StartChallenge(ctx context.Context, userID string) (*ChallengeView, error)

	SetChecklistItem(ctx context.Context, userID string, dayIndex int, item domain.ChecklistItem, value bool) (tracker.DayResult, *ChallengeView, error)
	SubmitJournal(ctx context.Context, userID string, dayIndex int, entry tracker.JournalEntry) (tracker.DayResult, *ChallengeView, error)
	EndDay(ctx context.Context, userID string, dayIndex int, confirmLoss bool) (tracker.EndDayResult, *ChallengeView, error)

	AddTodo(ctx context.Context, userID, text string) (domain.Todo, *ChallengeView, error)
	SetTodoCompleted(ctx context.Context, userID, todoID string, completed bool) (domain.Todo, *ChallengeView, error)
	RemoveTodo(ctx context.Context, userID, todoID string) (*ChallengeView, error)

	AddReminder(ctx context.Context, userID, at, text string) (domain.Reminder, *ChallengeView, error)
	SetReminderCompleted(ctx context.Context, userID, reminderID string, completed bool) (domain.Reminder, *ChallengeView, error)
	RemoveReminder(ctx context.Context, userID, reminderID string) (*ChallengeView, error)
}

type challengeService struct {
	snapshotRepo repository.SnapshotRepository
	locks        *UserLocks
	clock        func() time.Time
}

// NewChallengeService creates a ChallengeService. A nil clock means time.Now.
func NewChallengeService(snapshotRepo repository.SnapshotRepository, locks *UserLocks, clock func() time.Time) ChallengeService {
	if clock == nil {
		clock = time.Now
	}
	if locks == nil {
		locks = NewUserLocks()
	}
	return &challengeService{
		snapshotRepo: snapshotRepo,
		locks:        locks,
		clock:        clock,
	}
}

func (s *challengeService) GetChallenge(ctx context.Context, userID string) (*ChallengeView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(snap), nil
}

func (s *challengeService) SetGoal(ctx context.Context, userID, text string) (*ChallengeView, error) {
	return s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		return true, tracker.SetGoal(state, text)
	})
}

func (s *challengeService) StartChallenge(ctx context.Context, userID string) (*ChallengeView, error) {
	return s.mutate(ctx, userID, func(state *domain.ChallengeState, now time.Time) (bool, error) {
		started := state.Plan == nil
		_, err := tracker.Start(state, now)
		return started, err
	})
}

func (s *challengeService) SetChecklistItem(ctx context.Context, userID string, dayIndex int, item domain.ChecklistItem, value bool) (tracker.DayResult, *ChallengeView, error) {
	var res tracker.DayResult
	view, err := s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		var err error
		res, err = tracker.SetChecklistItem(state, dayIndex, item, value)
		return true, err
	})
	if err == nil && res.AutoWon {
		log.Info("day won", "userId", userID, "day", dayIndex+1)
	}
	return res, view, err
}

func (s *challengeService) SubmitJournal(ctx context.Context, userID string, dayIndex int, entry tracker.JournalEntry) (tracker.DayResult, *ChallengeView, error) {
	var res tracker.DayResult
	view, err := s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		var err error
		res, err = tracker.SubmitJournal(state, dayIndex, entry)
		return true, err
	})
	if err == nil && res.AutoWon {
		log.Info("day won", "userId", userID, "day", dayIndex+1)
	}
	return res, view, err
}

func (s *challengeService) EndDay(ctx context.Context, userID string, dayIndex int, confirmLoss bool) (tracker.EndDayResult, *ChallengeView, error) {
	var res tracker.EndDayResult
	view, err := s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		var err error
		res, err = tracker.EndDay(state, dayIndex, confirmLoss)
		return res.Outcome != tracker.OutcomeDeclined, err
	})
	if err == nil {
		log.Info("day ended", "userId", userID, "day", dayIndex+1, "outcome", res.Outcome, "complete", res.Complete)
	}
	return res, view, err
}

func (s *challengeService) AddTodo(ctx context.Context, userID, text string) (domain.Todo, *ChallengeView, error) {
	var todo domain.Todo
	view, err := s.mutate(ctx, userID, func(state *domain.ChallengeState, now time.Time) (bool, error) {
		var err error
		todo, err = tracker.AddTodo(state, text, now)
		return true, err
	})
	return todo, view, err
}

func (s *challengeService) SetTodoCompleted(ctx context.Context, userID, todoID string, completed bool) (domain.Todo, *ChallengeView, error) {
	var todo domain.Todo
	view, err := s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		var err error
		todo, err = tracker.SetTodoCompleted(state, todoID, completed)
		return true, err
	})
	return todo, view, err
}

func (s *challengeService) RemoveTodo(ctx context.Context, userID, todoID string) (*ChallengeView, error) {
	return s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		return true, tracker.RemoveTodo(state, todoID)
	})
}

func (s *challengeService) AddReminder(ctx context.Context, userID, at, text string) (domain.Reminder, *ChallengeView, error) {
	var reminder domain.Reminder
	view, err := s.mutate(ctx, userID, func(state *domain.ChallengeState, now time.Time) (bool, error) {
		var err error
		reminder, err = tracker.AddReminder(state, at, text, now)
		return true, err
	})
	return reminder, view, err
}

func (s *challengeService) SetReminderCompleted(ctx context.Context, userID, reminderID string, completed bool) (domain.Reminder, *ChallengeView, error) {
	var reminder domain.Reminder
	view, err := s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		var err error
		reminder, err = tracker.SetReminderCompleted(state, reminderID, completed)
		return true, err
	})
	return reminder, view, err
}

func (s *challengeService) RemoveReminder(ctx context.Context, userID, reminderID string) (*ChallengeView, error) {
	return s.mutate(ctx, userID, func(state *domain.ChallengeState, _ time.Time) (bool, error) {
		return true, tracker.RemoveReminder(state, reminderID)
	})
}

// mutate runs op under the user's lock. The snapshot is saved only when op
// succeeds and reports a change, so failed operations leave storage as it was.
func (s *challengeService) mutate(ctx context.Context, userID string, op func(state *domain.ChallengeState, now time.Time) (bool, error)) (*ChallengeView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	unlock := s.locks.Lock(userID)
	defer unlock()

	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed, err := op(&snap.State, s.clock())
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.snapshotRepo.Save(ctx, snap); err != nil {
			return nil, fmt.Errorf("save snapshot for %s: %w", userID, err)
		}
	}
	return s.view(snap), nil
}

// load returns the stored snapshot or a fresh empty one for unknown users.
func (s *challengeService) load(ctx context.Context, userID string) (*domain.UserSnapshot, error) {
	snap, err := s.snapshotRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.UserSnapshot{UserID: userID, State: *domain.NewChallengeState()}, nil
		}
		return nil, fmt.Errorf("load snapshot for %s: %w", userID, err)
	}
	return snap, nil
}

func (s *challengeService) view(snap *domain.UserSnapshot) *ChallengeView {
	state := &snap.State
	return &ChallengeView{
		State:           state,
		CurrentDayIndex: tracker.CurrentDayIndex(state, s.clock()),
		ActiveDayIndex:  tracker.ActiveDayIndex(state),
		LossWarning:     state.Ledger.LossWarningActive(),
		CanStart:        state.Plan == nil && tracker.CanStartChallenge(state),
		Complete:        tracker.IsComplete(state),
		Revision:        snap.Revision,
	}
}

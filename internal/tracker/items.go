package tracker

import (
	"alcyxob/win-tracker/internal/domain"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const reminderTimeLayout = "15:04"

// AddTodo appends a to-do with a fresh id.
func AddTodo(state *domain.ChallengeState, text string, now time.Time) (domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Todo{}, validationError("text", "required")
	}
	todo := domain.Todo{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: now.UTC(),
	}
	state.Todos = append(state.Todos, todo)
	return todo, nil
}

// SetTodoCompleted checks or unchecks a to-do.
func SetTodoCompleted(state *domain.ChallengeState, id string, completed bool) (domain.Todo, error) {
	for i := range state.Todos {
		if state.Todos[i].ID == id {
			state.Todos[i].Completed = completed
			return state.Todos[i], nil
		}
	}
	return domain.Todo{}, fmt.Errorf("%w: todo %s", ErrItemNotFound, id)
}

// RemoveTodo deletes a to-do by id.
func RemoveTodo(state *domain.ChallengeState, id string) error {
	for i := range state.Todos {
		if state.Todos[i].ID == id {
			state.Todos = append(state.Todos[:i], state.Todos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: todo %s", ErrItemNotFound, id)
}

// AddReminder appends a reminder; at must be a 24h HH:MM time.
func AddReminder(state *domain.ChallengeState, at, text string, now time.Time) (domain.Reminder, error) {
	at = strings.TrimSpace(at)
	text = strings.TrimSpace(text)
	if _, err := time.Parse(reminderTimeLayout, at); err != nil {
		return domain.Reminder{}, validationError("time", "expected HH:MM")
	}
	if text == "" {
		return domain.Reminder{}, validationError("text", "required")
	}
	r := domain.Reminder{
		ID:        uuid.NewString(),
		Time:      at,
		Text:      text,
		CreatedAt: now.UTC(),
	}
	state.Reminders = append(state.Reminders, r)
	return r, nil
}

// SetReminderCompleted checks or unchecks a reminder.
func SetReminderCompleted(state *domain.ChallengeState, id string, completed bool) (domain.Reminder, error) {
	for i := range state.Reminders {
		if state.Reminders[i].ID == id {
			state.Reminders[i].Completed = completed
			return state.Reminders[i], nil
		}
	}
	return domain.Reminder{}, fmt.Errorf("%w: reminder %s", ErrItemNotFound, id)
}

// RemoveReminder deletes a reminder by id.
func RemoveReminder(state *domain.ChallengeState, id string) error {
	for i := range state.Reminders {
		if state.Reminders[i].ID == id {
			state.Reminders = append(state.Reminders[:i], state.Reminders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: reminder %s", ErrItemNotFound, id)
}

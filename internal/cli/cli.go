package cli

import (
	"alcyxob/win-tracker/internal/domain"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Context is passed to every command's Run.
type Context struct {
	Out io.Writer
	Now func() time.Time
}

// readState loads a challenge state from a JSON file. Both the bare state and
// the {"data": state} envelope returned by the sync API are accepted.
func readState(path string) (*domain.ChallengeState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var envelope struct {
		Data *domain.ChallengeState `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if envelope.Data != nil {
		return normalize(envelope.Data), nil
	}

	state := domain.NewChallengeState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return normalize(state), nil
}

func normalize(state *domain.ChallengeState) *domain.ChallengeState {
	if state.Todos == nil {
		state.Todos = []domain.Todo{}
	}
	if state.Reminders == nil {
		state.Reminders = []domain.Reminder{}
	}
	return state
}

// writeState writes indented JSON to path, or to out when path is empty.
func writeState(out io.Writer, path string, state *domain.ChallengeState) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if path == "" {
		_, err := out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

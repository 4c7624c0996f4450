package service

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/tracker"
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var t0 = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func validJournal() tracker.JournalEntry {
	return tracker.JournalEntry{
		Gratitude: [3]string{"family", "health", "sunrise"},
		Summary:   words(tracker.MinSummaryWords),
		Rating:    8,
	}
}

// fakeArchive records calls in memory.
type fakeArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{objects: make(map[string][]byte)}
}

func (f *fakeArchive) PutSnapshot(ctx context.Context, userID string, payload []byte, at time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	key := "snapshots/" + userID + "/" + at.UTC().Format("20060102T150405Z") + ".json"
	f.objects[key] = payload
	return key, nil
}

func (f *fakeArchive) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[objectKey]; !ok {
		return "", errors.New("no such key")
	}
	return "https://archive.example/" + objectKey + "?signed=1", nil
}

func (f *fakeArchive) DeleteUserSnapshots(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for key := range f.objects {
		if strings.HasPrefix(key, "snapshots/"+userID+"/") {
			delete(f.objects, key)
			n++
		}
	}
	return n, nil
}

func (f *fakeArchive) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func startedState(now time.Time) *domain.ChallengeState {
	state := domain.NewChallengeState()
	if err := tracker.SetGoal(state, words(tracker.MinGoalWords)); err != nil {
		panic(err)
	}
	if _, err := tracker.Start(state, now); err != nil {
		panic(err)
	}
	return state
}

package memory

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/repository"
	"context"
	"errors"
	"sync"
	"time"
)

// snapshotRepository keeps snapshots in a process-local map. Nothing survives
// a restart.
type snapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]domain.UserSnapshot
	now       func() time.Time
}

// NewSnapshotRepository creates an empty in-memory repository.
func NewSnapshotRepository() repository.SnapshotRepository {
	return &snapshotRepository{
		snapshots: make(map[string]domain.UserSnapshot),
		now:       time.Now,
	}
}

func (r *snapshotRepository) Get(ctx context.Context, userID string) (*domain.UserSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.snapshots[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copySnapshot(stored), nil
}

func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.UserSnapshot) error {
	if snapshot.UserID == "" {
		return errors.New("snapshot requires a userId")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot.Revision = r.snapshots[snapshot.UserID].Revision + 1
	snapshot.LastUpdated = r.now().UTC()
	r.snapshots[snapshot.UserID] = *copySnapshot(*snapshot)
	return nil
}

func (r *snapshotRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snapshots[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.snapshots, userID)
	return nil
}

func copySnapshot(s domain.UserSnapshot) *domain.UserSnapshot {
	out := s
	out.State = *s.State.Clone()
	return &out
}

package service

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/repository"
	"alcyxob/win-tracker/internal/storage"
	"alcyxob/win-tracker/internal/tracker"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	ErrSnapshotNotFound = errors.New("user data not found")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
	ErrArchiveDisabled  = errors.New("snapshot archive is not configured")
	ErrNothingArchived  = errors.New("no archived snapshot for user")
)

const userIDPrefix = "user_"

// SyncService stores whole-state uploads from clients (last write wins) and
// hands them back on download.
type SyncService interface {
	Upload(ctx context.Context, userID string, state *domain.ChallengeState) (*domain.UserSnapshot, error)
	Download(ctx context.Context, userID string) (*domain.UserSnapshot, error)
	Delete(ctx context.Context, userID string) error
	ExportURL(ctx context.Context, userID string) (string, error)
	NewUserID() string
}

type syncService struct {
	snapshotRepo repository.SnapshotRepository
	archive      storage.SnapshotArchive // nil when archiving is off
	locks        *UserLocks
	clock        func() time.Time
}

// NewSyncService creates a SyncService. archive may be nil.
func NewSyncService(snapshotRepo repository.SnapshotRepository, archive storage.SnapshotArchive, locks *UserLocks, clock func() time.Time) SyncService {
	if clock == nil {
		clock = time.Now
	}
	if locks == nil {
		locks = NewUserLocks()
	}
	return &syncService{
		snapshotRepo: snapshotRepo,
		archive:      archive,
		locks:        locks,
		clock:        clock,
	}
}

// Upload validates the uploaded state and replaces the stored snapshot.
// A ledger that disagrees with the day sequence is re-derived rather than
// rejected; structural problems are rejected with ErrInvalidSnapshot.
func (s *syncService) Upload(ctx context.Context, userID string, state *domain.ChallengeState) (*domain.UserSnapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if state == nil {
		return nil, fmt.Errorf("%w: data is required", ErrInvalidSnapshot)
	}
	state = state.Clone()
	if state.Todos == nil {
		state.Todos = []domain.Todo{}
	}
	if state.Reminders == nil {
		state.Reminders = []domain.Reminder{}
	}

	if err := tracker.Check(state); err != nil {
		if !errors.Is(err, tracker.ErrLedgerOutOfSync) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		tracker.Reconcile(state)
		log.Warn("uploaded ledger out of sync, re-derived from days", "userId", userID, "err", err)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	snap := &domain.UserSnapshot{UserID: userID, State: *state}
	if prev, err := s.snapshotRepo.Get(ctx, userID); err == nil {
		snap.ArchiveKey = prev.ArchiveKey
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load snapshot for %s: %w", userID, err)
	}

	if key, ok := s.archiveState(ctx, userID, state); ok {
		snap.ArchiveKey = key
	}

	if err := s.snapshotRepo.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot for %s: %w", userID, err)
	}
	log.Info("data synced", "userId", userID, "revision", snap.Revision)
	return snap, nil
}

// archiveState copies the upload to the archive. Failures are logged and
// reported as !ok; they never fail the upload.
func (s *syncService) archiveState(ctx context.Context, userID string, state *domain.ChallengeState) (string, bool) {
	if s.archive == nil {
		return "", false
	}
	payload, err := json.Marshal(state)
	if err != nil {
		log.Error("marshal snapshot for archive", "userId", userID, "err", err)
		return "", false
	}
	key, err := s.archive.PutSnapshot(ctx, userID, payload, s.clock())
	if err != nil {
		log.Error("archive snapshot", "userId", userID, "err", err)
		return "", false
	}
	return key, true
}

func (s *syncService) Download(ctx context.Context, userID string) (*domain.UserSnapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	snap, err := s.snapshotRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return snap, nil
}

// Delete removes the stored snapshot and, when archiving is on, every
// archived copy. Archive errors are logged only.
func (s *syncService) Delete(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserIDRequired
	}
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.snapshotRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSnapshotNotFound
		}
		return err
	}

	if s.archive != nil {
		if n, err := s.archive.DeleteUserSnapshots(ctx, userID); err != nil {
			log.Error("delete archived snapshots", "userId", userID, "deleted", n, "err", err)
		}
	}
	log.Info("user data deleted", "userId", userID)
	return nil
}

// ExportURL returns a presigned download URL for the latest archived upload.
func (s *syncService) ExportURL(ctx context.Context, userID string) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}
	snap, err := s.Download(ctx, userID)
	if err != nil {
		return "", err
	}
	if snap.ArchiveKey == "" {
		return "", ErrNothingArchived
	}
	return s.archive.GeneratePresignedDownloadURL(ctx, snap.ArchiveKey, 0)
}

func (s *syncService) NewUserID() string {
	return userIDPrefix + uuid.NewString()
}

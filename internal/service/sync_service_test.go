package service

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/repository/memory"
	"alcyxob/win-tracker/internal/tracker"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAndDownload(t *testing.T) {
	ctx := context.Background()
	svc := NewSyncService(memory.NewSnapshotRepository(), nil, nil, fixedClock(t0))

	state := startedState(t0)
	snap, err := svc.Upload(ctx, "user_1", state)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Revision)
	assert.Empty(t, snap.ArchiveKey)

	got, err := svc.Download(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, state.GoalText, got.State.GoalText)
	assert.Len(t, got.State.Plan.Days, domain.ChallengeDays)

	_, err = svc.Download(ctx, "user_2")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestUploadValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewSyncService(memory.NewSnapshotRepository(), nil, nil, fixedClock(t0))

	_, err := svc.Upload(ctx, "", domain.NewChallengeState())
	assert.ErrorIs(t, err, ErrUserIDRequired)

	_, err = svc.Upload(ctx, "user_1", nil)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	broken := startedState(t0)
	broken.Plan.Days = broken.Plan.Days[:10]
	_, err = svc.Upload(ctx, "user_1", broken)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	lostNoCursor := startedState(t0)
	lostNoCursor.Plan.Days[0].Status = domain.StatusLoss
	lostNoCursor.Ledger = tracker.RebuildLedger(lostNoCursor.Plan)
	_, err = svc.Upload(ctx, "user_1", lostNoCursor)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	badRating := startedState(t0)
	badRating.Plan.Days[2].Journal.Rating = 0
	_, err = svc.Upload(ctx, "user_1", badRating)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	twoCursors := startedState(t0)
	twoCursors.Plan.Days[3].Status = domain.StatusCurrent
	_, err = svc.Upload(ctx, "user_1", twoCursors)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestUploadReconcilesLedger(t *testing.T) {
	ctx := context.Background()
	svc := NewSyncService(memory.NewSnapshotRepository(), nil, nil, fixedClock(t0))

	state := startedState(t0)
	state.Ledger.DaysWon = 7 // drifted counter from an old client
	state.Todos = nil

	snap, err := svc.Upload(ctx, "user_1", state)
	require.NoError(t, err)
	assert.Equal(t, domain.StreakLedger{}, snap.State.Ledger)
	assert.NotNil(t, snap.State.Todos)
	assert.Equal(t, 7, state.Ledger.DaysWon, "caller's state is not modified")
	assert.NoError(t, tracker.Check(&snap.State))
}

func TestUploadArchivesAndExports(t *testing.T) {
	ctx := context.Background()
	archive := newFakeArchive()
	svc := NewSyncService(memory.NewSnapshotRepository(), archive, nil, fixedClock(t0))

	_, err := svc.ExportURL(ctx, "user_1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	snap, err := svc.Upload(ctx, "user_1", startedState(t0))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(snap.ArchiveKey, "snapshots/user_1/"))
	assert.Equal(t, 1, archive.count())

	url, err := svc.ExportURL(ctx, "user_1")
	require.NoError(t, err)
	assert.Contains(t, url, snap.ArchiveKey)

	require.NoError(t, svc.Delete(ctx, "user_1"))
	assert.Equal(t, 0, archive.count())
	assert.ErrorIs(t, svc.Delete(ctx, "user_1"), ErrSnapshotNotFound)
}

func TestUploadSurvivesArchiveFailure(t *testing.T) {
	ctx := context.Background()
	archive := newFakeArchive()
	svc := NewSyncService(memory.NewSnapshotRepository(), archive, nil, fixedClock(t0))

	first, err := svc.Upload(ctx, "user_1", startedState(t0))
	require.NoError(t, err)

	archive.putErr = errors.New("bucket unreachable")
	second, err := svc.Upload(ctx, "user_1", startedState(t0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Revision)
	assert.Equal(t, first.ArchiveKey, second.ArchiveKey, "previous archive key is kept")
}

func TestExportWithoutArchive(t *testing.T) {
	svc := NewSyncService(memory.NewSnapshotRepository(), nil, nil, fixedClock(t0))
	_, err := svc.ExportURL(context.Background(), "user_1")
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}

func TestExportNothingArchived(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	require.NoError(t, repo.Save(ctx, &domain.UserSnapshot{UserID: "user_1", State: *domain.NewChallengeState()}))

	svc := NewSyncService(repo, newFakeArchive(), nil, fixedClock(t0))
	_, err := svc.ExportURL(ctx, "user_1")
	assert.ErrorIs(t, err, ErrNothingArchived)
}

func TestNewUserID(t *testing.T) {
	svc := NewSyncService(memory.NewSnapshotRepository(), nil, nil, nil)
	a, b := svc.NewUserID(), svc.NewUserID()
	assert.True(t, strings.HasPrefix(a, "user_"))
	assert.NotEqual(t, a, b)
}

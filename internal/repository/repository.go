package repository

import (
	"alcyxob/win-tracker/internal/domain" // Import our defined domain models
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SnapshotRepository stores the last snapshot per user. Save replaces the
// stored snapshot wholesale (last write wins), bumps Revision and stamps
// LastUpdated.
type SnapshotRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserSnapshot, error)
	Save(ctx context.Context, snapshot *domain.UserSnapshot) error
	Delete(ctx context.Context, userID string) error
}

package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// SnapshotArchive keeps a copy of every uploaded snapshot in object storage
// so users can export their history.
type SnapshotArchive interface {
	// PutSnapshot stores the raw JSON snapshot and returns its object key.
	PutSnapshot(ctx context.Context, userID string, payload []byte, at time.Time) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an archived snapshot directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteUserSnapshots removes every archived snapshot of a user and
	// returns how many objects were deleted.
	DeleteUserSnapshots(ctx context.Context, userID string) (int, error)
}

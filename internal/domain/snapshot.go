package domain

import (
	"time"
)

// UserSnapshot is the server-side record of the last state uploaded for a user.
type UserSnapshot struct {
	UserID      string         `bson:"_id" json:"userId"`
	State       ChallengeState `bson:"state" json:"data"`
	Revision    int64          `bson:"revision" json:"revision"` // Bumped on every save
	LastUpdated time.Time      `bson:"lastUpdated" json:"lastUpdated"`
	ArchiveKey  string         `bson:"archiveKey,omitempty" json:"archiveKey,omitempty"` // Latest S3 copy, if archiving is on
}

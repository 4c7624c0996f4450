// internal/repository/mongo/snapshot_repo.go
package mongo

import (
	"alcyxob/win-tracker/internal/domain"
	"alcyxob/win-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SnapshotCollectionName = "snapshots"

// mongoSnapshotRepository implements repository.SnapshotRepository
type mongoSnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoSnapshotRepository creates a new snapshot repository. Documents are
// keyed by user id.
func NewMongoSnapshotRepository(db *mongo.Database) repository.SnapshotRepository {
	return &mongoSnapshotRepository{
		collection: db.Collection(SnapshotCollectionName),
	}
}

// Get retrieves the stored snapshot for a user.
func (r *mongoSnapshotRepository) Get(ctx context.Context, userID string) (*domain.UserSnapshot, error) {
	var snapshot domain.UserSnapshot
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&snapshot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}

// Save upserts the snapshot and increments its revision in the same round trip.
func (r *mongoSnapshotRepository) Save(ctx context.Context, snapshot *domain.UserSnapshot) error {
	if snapshot.UserID == "" {
		return errors.New("snapshot requires a userId")
	}

	filter := bson.M{"_id": snapshot.UserID}
	update := bson.M{
		"$set": bson.M{
			"state":       snapshot.State,
			"archiveKey":  snapshot.ArchiveKey,
			"lastUpdated": time.Now().UTC(),
		},
		"$inc": bson.M{"revision": 1},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.UserSnapshot
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrUpdateFailed
		}
		return err
	}
	snapshot.Revision = saved.Revision
	snapshot.LastUpdated = saved.LastUpdated
	return nil
}

// Delete removes the snapshot for a user.
func (r *mongoSnapshotRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSnapshotIndexes creates necessary indexes. Call during startup.
func EnsureSnapshotIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Most recently synced users first, for admin listings
			Keys:    bson.D{{Key: "lastUpdated", Value: -1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("failed to create indexes", "collection", collection.Name(), "err", err)
	}
}

package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

const collectionLocations = "locations"

type LocationRepository struct {
	col *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{col: db.Collection(collectionLocations)}
}

// Create inserts a new location document, assigning a fresh ID.
func (r *LocationRepository) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	clone := *loc
	clone.ID = uuid.NewString()
	if _, err := r.col.InsertOne(ctx, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id, userID string) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var loc domain.Location
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&loc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Location, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *LocationRepository) ListByState(ctx context.Context, userID, state string) ([]*domain.Location, error) {
	return r.list(ctx, bson.M{"user_id": userID, "state": state})
}

func (r *LocationRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Location, error) {
	return r.list(ctx, bson.M{
		"user_id":    userID,
		"start_date": bson.M{"$gte": from, "$lte": to},
	})
}

func (r *LocationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var locations []*domain.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Update replaces the document; the user filter keeps one user from touching
// another's records.
func (r *LocationRepository) Update(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": loc.ID, "user_id": loc.UserID}, loc)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrLocationNotFound
	}
	return loc, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list queries rely on.
func (r *LocationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

const collectionParks = "national_parks"

type ParkRepository struct {
	col *mongo.Collection
}

func NewParkRepository(db *mongo.Database) *ParkRepository {
	return &ParkRepository{col: db.Collection(collectionParks)}
}

func (r *ParkRepository) GetAll(ctx context.Context) ([]domain.NationalPark, error) {
	return r.find(ctx, bson.M{})
}

func (r *ParkRepository) GetByState(ctx context.Context, state string) ([]domain.NationalPark, error) {
	return r.find(ctx, bson.M{"state": state})
}

func (r *ParkRepository) find(ctx context.Context, filter bson.M) ([]domain.NationalPark, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var parks []domain.NationalPark
	if err := cursor.All(ctx, &parks); err != nil {
		return nil, err
	}
	return parks, nil
}

// EnsureIndexes creates the state index used by GetByState.
func (r *ParkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "state", Value: 1}},
	})
	return err
}

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/traveltracker/travel-log-api/internal/core/domain"
)

const collectionLocationTypes = "location_types"

// defaultLocationTypes seeds the controlled vocabulary on first start.
var defaultLocationTypes = []domain.LocationType{
	{Name: "National Park", Description: "U.S. national park"},
	{Name: "State Park", Description: "State park or recreation area"},
	{Name: "RV Park", Description: "RV park or campground"},
	{Name: "Hotel", Description: "Hotel, motel, or resort"},
	{Name: "Attraction", Description: "Tourist attraction or point of interest"},
	{Name: "Other", Description: "Anything else"},
}

type LocationTypeRepository struct {
	col *mongo.Collection
}

func NewLocationTypeRepository(db *mongo.Database) *LocationTypeRepository {
	return &LocationTypeRepository{col: db.Collection(collectionLocationTypes)}
}

func (r *LocationTypeRepository) GetAll(ctx context.Context) ([]domain.LocationType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var types []domain.LocationType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// GetByName is a case-sensitive exact lookup; the stored name is the
// canonical key.
func (r *LocationTypeRepository) GetByName(ctx context.Context, name string) (*domain.LocationType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var entry domain.LocationType
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationTypeNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Seed inserts the default vocabulary when the collection is empty.
func (r *LocationTypeRepository) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(defaultLocationTypes))
	for _, t := range defaultLocationTypes {
		docs = append(docs, t)
	}
	_, err = r.col.InsertMany(ctx, docs)
	return err
}

// EnsureIndexes enforces name uniqueness.
func (r *LocationTypeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

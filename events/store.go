package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devhub/apperr"
	"devhub/models"
	"devhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection events are persisted in.
const CollectionName = "Event"

const slugConflict = "an event with this slug already exists"

// Store is the document store an event service writes through.
// FindByID and FindBySlug return apperr.ErrNotFound when nothing matches.
type Store interface {
	Insert(ctx context.Context, e *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	List(ctx context.Context, skip, limit int64) ([]models.Event, int64, error)
}

// MongoStore keeps events in a mongo collection with a unique slug index.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

// Indexes declares the single-field unique index on slug.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: models.FieldSlug, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_slug"),
		},
	}
}

func (s *MongoStore) Insert(ctx context.Context, e *models.Event) error {
	now := s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}

	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		e.ID = primitive.NilObjectID
		return apperr.FromMongo(err, slugConflict)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return s.findOne(ctx, bson.M{models.FieldSlug: slug})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.Event, error) {
	var e models.Event
	err := s.coll.FindOne(ctx, filter).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("event: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = s.now()
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return apperr.FromMongo(err, slugConflict)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event: %w", apperr.ErrNotFound)
	}
	return nil
}

// List returns a page of events, newest first, and the total count.
func (s *MongoStore) List(ctx context.Context, skip, limit int64) ([]models.Event, int64, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Event](ctx, s.coll, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// EventExists reports whether an event with the given hex id is stored.
// A malformed id is an error, not a miss.
func (s *MongoStore) EventExists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("malformed event id %q: %w", id, err)
	}

	err = s.coll.FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devhub/apperr"
	"devhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection bookings are persisted in.
const CollectionName = "Booking"

const duplicateBooking = "this email is already booked for the event"

// Store persists bookings. Insert and Update report a repeated
// (eventId, email) pair as a ConflictError.
type Store interface {
	Insert(ctx context.Context, b *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}

type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

// Indexes declares the eventId lookup index and the unique (eventId, email) pair.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: models.FieldEventID, Value: 1}},
			Options: options.Index().SetName("event_lookup"),
		},
		{
			Keys:    bson.D{{Key: models.FieldEventID, Value: 1}, {Key: models.FieldEmail, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_event_email"),
		},
	}
}

func (s *MongoStore) Insert(ctx context.Context, b *models.Booking) error {
	now := s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}

	if _, err := s.coll.InsertOne(ctx, b); err != nil {
		b.ID = primitive.NilObjectID
		return apperr.FromMongo(err, duplicateBooking)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var b models.Booking
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("booking: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = s.now()
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return apperr.FromMongo(err, duplicateBooking)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking: %w", apperr.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{models.FieldEventID: eventID})
}

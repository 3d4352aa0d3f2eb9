package booking

import (
	"context"
	"strings"

	"devhub/apperr"
	"devhub/models"
	"devhub/mq"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Service validates bookings and writes them through a Store.
//
// The event existence check is not atomic with the write: an event deleted
// between the two still ends up referenced.
type Service struct {
	store   Store
	events  EventChecker
	emitter mq.Emitter
	log     *zap.Logger
}

func NewService(store Store, events EventChecker, emitter mq.Emitter, log *zap.Logger) *Service {
	if emitter == nil {
		emitter = mq.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, events: events, emitter: emitter, log: log}
}

func requireEventID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", apperr.Invalid(models.FieldEventID, "event ID is required")
	}
	return id, nil
}

func parseEventID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &apperr.ReferenceError{Reason: "error validating event reference", Err: err}
	}
	return oid, nil
}

// Create books email onto the referenced event.
func (s *Service) Create(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	eventID, err := requireEventID(in.EventID)
	if err != nil {
		return nil, err
	}

	if err := CheckEventReference(ctx, s.events, eventID); err != nil {
		return nil, err
	}
	oid, err := parseEventID(eventID)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{EventID: oid, Email: email}
	if err := s.store.Insert(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created", zap.String("id", b.ID.Hex()), zap.String("event_id", eventID))
	s.emitter.Emit(ctx, mq.TopicBookingCreated, mq.Index{
		EntityType: "booking", EntityID: b.ID.Hex(), Method: "POST",
		ItemType: "event", ItemID: eventID,
	})
	return b, nil
}

// Update changes the event or email of a booking. The event reference is
// re-checked only when the event actually changes.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, patch models.BookingPatch) (*models.Booking, error) {
	var email string
	if patch.Email != nil {
		var err error
		if email, err = NormalizeEmail(*patch.Email); err != nil {
			return nil, err
		}
	}
	var eventID string
	if patch.EventID != nil {
		var err error
		if eventID, err = requireEventID(*patch.EventID); err != nil {
			return nil, err
		}
	}

	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Email != nil && email != b.Email {
		b.Email = email
		set[models.FieldEmail] = email
	}
	if patch.EventID != nil && eventID != b.EventID.Hex() {
		if err := CheckEventReference(ctx, s.events, eventID); err != nil {
			return nil, err
		}
		oid, err := parseEventID(eventID)
		if err != nil {
			return nil, err
		}
		b.EventID = oid
		set[models.FieldEventID] = oid
	}
	if len(set) == 0 {
		return b, nil
	}

	if err := s.store.Update(ctx, id, set); err != nil {
		return nil, err
	}

	s.log.Info("booking updated", zap.String("id", id.Hex()))
	s.emitter.Emit(ctx, mq.TopicBookingUpdated, mq.Index{
		EntityType: "booking", EntityID: id.Hex(), Method: "PATCH",
		ItemType: "event", ItemID: b.EventID.Hex(),
	})
	return b, nil
}

// CountForEvent returns how many bookings an event has.
func (s *Service) CountForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.store.CountByEvent(ctx, eventID)
}

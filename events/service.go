package events

import (
	"context"
	"fmt"

	"devhub/models"
	"devhub/mq"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Service validates and normalizes events before handing them to the store.
type Service struct {
	store   Store
	emitter mq.Emitter
	log     *zap.Logger
}

func NewService(store Store, emitter mq.Emitter, log *zap.Logger) *Service {
	if emitter == nil {
		emitter = mq.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, emitter: emitter, log: log}
}

// Create validates e, derives slug, date and time, and inserts it.
// A slug collision is reported by the store as a ConflictError.
func (s *Service) Create(ctx context.Context, e *models.Event) error {
	if err := Prepare(e, models.AllFields(models.EventFields...)); err != nil {
		return err
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return err
	}

	s.log.Info("event created", zap.String("id", e.ID.Hex()), zap.String("slug", e.Slug))
	s.emitter.Emit(ctx, mq.TopicEventCreated, mq.Index{EntityType: "event", EntityID: e.ID.Hex(), Method: "POST"})
	return nil
}

// Update applies patch to the stored event. Derived fields are recomputed only
// when their source field is part of the patch.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, patch models.EventPatch) (*models.Event, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	touched := patch.Apply(e)
	if touched.Len() == 0 {
		return e, nil
	}
	if err := Prepare(e, touched); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, id, changedFields(e, touched)); err != nil {
		return nil, err
	}

	s.log.Info("event updated", zap.String("id", id.Hex()), zap.Int("fields", touched.Len()))
	s.emitter.Emit(ctx, mq.TopicEventUpdated, mq.Index{EntityType: "event", EntityID: id.Hex(), Method: "PATCH"})
	return e, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	return s.store.FindBySlug(ctx, slug)
}

func (s *Service) List(ctx context.Context, skip, limit int64) ([]models.Event, int64, error) {
	list, total, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return list, total, nil
}

// changedFields builds the $set document for the touched fields and whatever
// was derived from them.
func changedFields(e *models.Event, touched models.FieldSet) bson.M {
	values := map[string]any{
		models.FieldTitle:       e.Title,
		models.FieldDescription: e.Description,
		models.FieldOverview:    e.Overview,
		models.FieldImage:       e.Image,
		models.FieldVenue:       e.Venue,
		models.FieldLocation:    e.Location,
		models.FieldDate:        e.Date,
		models.FieldTime:        e.Time,
		models.FieldMode:        e.Mode,
		models.FieldAudience:    e.Audience,
		models.FieldAgenda:      e.Agenda,
		models.FieldOrganizer:   e.Organizer,
		models.FieldTags:        e.Tags,
	}

	set := bson.M{}
	for field := range touched {
		if v, ok := values[field]; ok {
			set[field] = v
		}
	}
	if touched.Has(models.FieldTitle) {
		set[models.FieldSlug] = e.Slug
	}
	return set
}

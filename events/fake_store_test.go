package events

import (
	"context"
	"fmt"
	"sync"

	"devhub/apperr"
	"devhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store that enforces the unique slug index.
type fakeStore struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]models.Event
	order   []primitive.ObjectID
	updates []bson.M
	err     error // if set, every call returns it
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[primitive.ObjectID]models.Event)}
}

func (f *fakeStore) slugTaken(slug string, except primitive.ObjectID) bool {
	for id, e := range f.byID {
		if id != except && e.Slug == slug {
			return true
		}
	}
	return false
}

func (f *fakeStore) Insert(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.slugTaken(e.Slug, primitive.NilObjectID) {
		return &apperr.ConflictError{Reason: slugConflict}
	}
	e.ID = primitive.NewObjectID()
	f.byID[e.ID] = *e
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("event: %w", apperr.ErrNotFound)
	}
	return &e, nil
}

func (f *fakeStore) FindBySlug(_ context.Context, slug string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("event: %w", apperr.ErrNotFound)
}

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("event: %w", apperr.ErrNotFound)
	}
	if slug, ok := set[models.FieldSlug].(string); ok && f.slugTaken(slug, id) {
		return &apperr.ConflictError{Reason: slugConflict}
	}

	doc := bson.M{}
	raw, err := bson.Marshal(e)
	if err != nil {
		return err
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, v := range set {
		doc[k] = v
	}
	raw, err = bson.Marshal(doc)
	if err != nil {
		return err
	}
	var updated models.Event
	if err := bson.Unmarshal(raw, &updated); err != nil {
		return err
	}
	f.byID[id] = updated
	f.updates = append(f.updates, set)
	return nil
}

func (f *fakeStore) List(_ context.Context, skip, limit int64) ([]models.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	out := []models.Event{}
	for i := int64(len(f.order)) - 1 - skip; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, f.byID[f.order[i]])
	}
	return out, int64(len(f.order)), nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

package booking

import (
	"context"
	"fmt"
	"sync"

	"devhub/apperr"
	"devhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store enforcing the unique (eventId, email) pair.
type fakeStore struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.Booking
	calls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[primitive.ObjectID]models.Booking)}
}

func (f *fakeStore) taken(eventID primitive.ObjectID, email string, except primitive.ObjectID) bool {
	for id, b := range f.byID {
		if id != except && b.EventID == eventID && b.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeStore) Insert(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.taken(b.EventID, b.Email, primitive.NilObjectID) {
		return &apperr.ConflictError{Reason: duplicateBooking}
	}
	b.ID = primitive.NewObjectID()
	f.byID[b.ID] = *b
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	b, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("booking: %w", apperr.ErrNotFound)
	}
	return &b, nil
}

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	b, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("booking: %w", apperr.ErrNotFound)
	}
	if v, ok := set[models.FieldEventID].(primitive.ObjectID); ok {
		b.EventID = v
	}
	if v, ok := set[models.FieldEmail].(string); ok {
		b.Email = v
	}
	if f.taken(b.EventID, b.Email, id) {
		return &apperr.ConflictError{Reason: duplicateBooking}
	}
	f.byID[id] = b
	return nil
}

func (f *fakeStore) CountByEvent(_ context.Context, eventID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var n int64
	for _, b := range f.byID {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

// fakeEvents is an EventChecker over a fixed set of ids.
type fakeEvents struct {
	mu      sync.Mutex
	ids     map[string]bool
	err     error
	lookups int
}

func newFakeEvents(ids ...primitive.ObjectID) *fakeEvents {
	f := &fakeEvents{ids: make(map[string]bool)}
	for _, id := range ids {
		f.ids[id.Hex()] = true
	}
	return f
}

func (f *fakeEvents) EventExists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return false, f.err
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, err
	}
	return f.ids[id], nil
}

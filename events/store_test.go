package events

import (
	"context"
	"testing"

	"devhub/apperr"
	"devhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testNS = "devhub.Event"

func eventDoc(id primitive.ObjectID, title, slug string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "slug", Value: slug},
		{Key: "mode", Value: "online"},
		{Key: "agenda", Value: bson.A{"Intro"}},
		{Key: "tags", Value: bson.A{"go"}},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert sets id and timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewMongoStore(mt.Coll)

		e := validEvent("Inserted")
		e.Slug = "inserted"
		require.NoError(mt, s.Insert(ctx, e))
		assert.False(mt, e.ID.IsZero())
		assert.False(mt, e.CreatedAt.IsZero())
		assert.Equal(mt, e.CreatedAt, e.UpdatedAt)
	})

	mt.Run("duplicate slug is a conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: devhub.Event index: unique_slug dup key",
		}))
		s := NewMongoStore(mt.Coll)

		e := validEvent("My Talk")
		e.Slug = "my-talk"
		err := s.Insert(ctx, e)
		require.Error(mt, err)
		assert.True(mt, apperr.IsConflict(err))
		assert.True(mt, e.ID.IsZero())
	})

	mt.Run("find by slug", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, eventDoc(id, "My Talk", "my-talk")))
		s := NewMongoStore(mt.Coll)

		got, err := s.FindBySlug(ctx, "my-talk")
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, models.ModeOnline, got.Mode)
		assert.Equal(mt, []string{"Intro"}, got.Agenda)
	})

	mt.Run("find by id miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))
		s := NewMongoStore(mt.Coll)

		_, err := s.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("update unmatched is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		s := NewMongoStore(mt.Coll)

		err := s.Update(ctx, primitive.NewObjectID(), bson.M{"description": "x"})
		assert.ErrorIs(mt, err, apperr.ErrNotFound)
	})

	mt.Run("update duplicate slug is a conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))
		s := NewMongoStore(mt.Coll)

		err := s.Update(ctx, primitive.NewObjectID(), bson.M{"title": "Taken", "slug": "taken"})
		assert.True(mt, apperr.IsConflict(err))
	})

	mt.Run("list returns page and total", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}),
			mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
				eventDoc(primitive.NewObjectID(), "B", "b"),
				eventDoc(primitive.NewObjectID(), "A", "a"),
			),
		)
		s := NewMongoStore(mt.Coll)

		list, total, err := s.List(ctx, 0, 10)
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), total)
		require.Len(mt, list, 2)
		assert.Equal(mt, "b", list[0].Slug)
	})

	mt.Run("event exists", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: id}}))
		s := NewMongoStore(mt.Coll)

		ok, err := s.EventExists(ctx, id.Hex())
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("event missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))
		s := NewMongoStore(mt.Coll)

		ok, err := s.EventExists(ctx, primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("malformed id is an error", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)

		ok, err := s.EventExists(ctx, "not-an-object-id")
		require.Error(mt, err)
		assert.False(mt, ok)
	})
}

func TestIndexesDeclareUniqueSlug(t *testing.T) {
	idx := Indexes()
	require.Len(t, idx, 1)
	assert.Equal(t, bson.D{{Key: "slug", Value: 1}}, idx[0].Keys)
	require.NotNil(t, idx[0].Options.Unique)
	assert.True(t, *idx[0].Options.Unique)
}

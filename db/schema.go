package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// codeNamespaceExists is returned by create when the collection is already there.
const codeNamespaceExists = 48

// CollectionSpec is what a collection needs before the service can write to it.
type CollectionSpec struct {
	Name      string
	Validator bson.M
	Indexes   []mongo.IndexModel
}

// EnsureCollections creates each collection with its $jsonSchema validator,
// updating the validator when the collection already exists, and then builds
// its indexes.
func EnsureCollections(ctx context.Context, database *mongo.Database, specs ...CollectionSpec) error {
	for _, spec := range specs {
		if err := ensureCollection(ctx, database, spec); err != nil {
			return fmt.Errorf("collection %s: %w", spec.Name, err)
		}
	}
	return nil
}

func ensureCollection(ctx context.Context, database *mongo.Database, spec CollectionSpec) error {
	if spec.Validator != nil {
		opts := options.CreateCollection().SetValidator(spec.Validator)
		err := database.CreateCollection(ctx, spec.Name, opts)

		var cmdErr mongo.CommandError
		switch {
		case err == nil:
		case errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists:
			mod := bson.D{{Key: "collMod", Value: spec.Name}, {Key: "validator", Value: spec.Validator}}
			if err := database.RunCommand(ctx, mod).Err(); err != nil {
				return fmt.Errorf("update validator: %w", err)
			}
		default:
			return fmt.Errorf("create: %w", err)
		}
	}

	if len(spec.Indexes) == 0 {
		return nil
	}
	if _, err := database.Collection(spec.Name).Indexes().CreateMany(ctx, spec.Indexes); err != nil {
		return fmt.Errorf("indexes: %w", err)
	}
	return nil
}

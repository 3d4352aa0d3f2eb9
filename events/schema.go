package events

import (
	"devhub/db"

	"go.mongodb.org/mongo-driver/bson"
)

var nonEmptyString = bson.M{"bsonType": "string", "minLength": 1}

// Collection describes the Event collection: its validator and the unique
// slug index.
func Collection() db.CollectionSpec {
	return db.CollectionSpec{
		Name:      CollectionName,
		Validator: schema,
		Indexes:   Indexes(),
	}
}

var schema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title", "slug", "description", "overview", "image", "venue",
			"location", "date", "time", "mode", "audience", "agenda",
			"organizer", "tags",
		},
		"additionalProperties": true,
		"properties": bson.M{
			"title":       nonEmptyString,
			"slug":        bson.M{"bsonType": "string", "pattern": "^[^A-Z\\s]+$"},
			"description": nonEmptyString,
			"overview":    nonEmptyString,
			"image":       nonEmptyString,
			"venue":       nonEmptyString,
			"location":    nonEmptyString,
			"date":        bson.M{"bsonType": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
			"time":        bson.M{"bsonType": "string", "pattern": "^([01]\\d|2[0-3]):[0-5]\\d$"},
			"mode": bson.M{
				"bsonType": "string",
				"enum":     []string{"online", "offline", "hybrid"},
			},
			"audience":  nonEmptyString,
			"organizer": nonEmptyString,
			"agenda": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items":    bson.M{"bsonType": "string"},
			},
			"tags": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items":    bson.M{"bsonType": "string"},
			},
			"createdAt": bson.M{"bsonType": "date"},
			"updatedAt": bson.M{"bsonType": "date"},
		},
	},
}

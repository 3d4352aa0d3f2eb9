package booking

import (
	"devhub/db"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection describes the Booking collection, its validator and indexes.
func Collection() db.CollectionSpec {
	return db.CollectionSpec{
		Name:      CollectionName,
		Validator: schema,
		Indexes:   Indexes(),
	}
}

var schema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"eventId", "email"},
		"additionalProperties": true,
		"properties": bson.M{
			"eventId": bson.M{"bsonType": "objectId"},
			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^\s@]+@[^\s@]+\.[^\s@]+$`,
			},
			"createdAt": bson.M{"bsonType": "date"},
			"updatedAt": bson.M{"bsonType": "date"},
		},
	},
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FieldEventID = "eventId"
	FieldEmail   = "email"
)

type Booking struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventID   primitive.ObjectID `json:"eventId" bson:"eventId"`
	Email     string             `json:"email" bson:"email"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookingInput is what a caller submits; EventID is the hex form of the id.
type BookingInput struct {
	EventID string `json:"eventId"`
	Email   string `json:"email"`
}

// BookingPatch changes an existing booking. Nil fields are left untouched.
type BookingPatch struct {
	EventID *string `json:"eventId,omitempty"`
	Email   *string `json:"email,omitempty"`
}

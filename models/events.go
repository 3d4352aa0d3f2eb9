package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mode is how an event is attended.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeHybrid  Mode = "hybrid"
)

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

// Event field names as stored in the document.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldOverview    = "overview"
	FieldImage       = "image"
	FieldVenue       = "venue"
	FieldLocation    = "location"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldMode        = "mode"
	FieldAudience    = "audience"
	FieldAgenda      = "agenda"
	FieldOrganizer   = "organizer"
	FieldTags        = "tags"
)

// EventFields lists every caller-supplied Event field.
var EventFields = []string{
	FieldTitle, FieldDescription, FieldOverview, FieldImage, FieldVenue,
	FieldLocation, FieldDate, FieldTime, FieldMode, FieldAudience,
	FieldAgenda, FieldOrganizer, FieldTags,
}

type Event struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Overview    string             `json:"overview" bson:"overview"`
	Image       string             `json:"image" bson:"image"`
	Venue       string             `json:"venue" bson:"venue"`
	Location    string             `json:"location" bson:"location"`
	Date        string             `json:"date" bson:"date"`
	Time        string             `json:"time" bson:"time"`
	Mode        Mode               `json:"mode" bson:"mode"`
	Audience    string             `json:"audience" bson:"audience"`
	Agenda      []string           `json:"agenda" bson:"agenda"`
	Organizer   string             `json:"organizer" bson:"organizer"`
	Tags        []string           `json:"tags" bson:"tags"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// EventPatch carries a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Overview    *string   `json:"overview,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Venue       *string   `json:"venue,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Time        *string   `json:"time,omitempty"`
	Mode        *Mode     `json:"mode,omitempty"`
	Audience    *string   `json:"audience,omitempty"`
	Agenda      *[]string `json:"agenda,omitempty"`
	Organizer   *string   `json:"organizer,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Apply copies the set fields of p onto e and returns which ones it touched.
func (p EventPatch) Apply(e *Event) FieldSet {
	touched := FieldSet{}
	setString := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			touched.Add(field)
		}
	}
	setList := func(field string, dst *[]string, src *[]string) {
		if src != nil {
			*dst = append([]string(nil), (*src)...)
			touched.Add(field)
		}
	}

	setString(FieldTitle, &e.Title, p.Title)
	setString(FieldDescription, &e.Description, p.Description)
	setString(FieldOverview, &e.Overview, p.Overview)
	setString(FieldImage, &e.Image, p.Image)
	setString(FieldVenue, &e.Venue, p.Venue)
	setString(FieldLocation, &e.Location, p.Location)
	setString(FieldDate, &e.Date, p.Date)
	setString(FieldTime, &e.Time, p.Time)
	setString(FieldAudience, &e.Audience, p.Audience)
	setString(FieldOrganizer, &e.Organizer, p.Organizer)
	if p.Mode != nil {
		e.Mode = *p.Mode
		touched.Add(FieldMode)
	}
	setList(FieldAgenda, &e.Agenda, p.Agenda)
	setList(FieldTags, &e.Tags, p.Tags)

	return touched
}

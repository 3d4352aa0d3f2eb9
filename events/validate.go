package events

import (
	"strings"

	"devhub/apperr"
	"devhub/models"
)

// trimFields applies the store's trim rule to every string field.
func trimFields(e *models.Event) {
	for _, p := range []*string{
		&e.Title, &e.Description, &e.Overview, &e.Image, &e.Venue,
		&e.Location, &e.Date, &e.Time, &e.Audience, &e.Organizer,
	} {
		*p = strings.TrimSpace(*p)
	}
	e.Mode = models.Mode(strings.TrimSpace(string(e.Mode)))
	e.Agenda = compact(e.Agenda)
	e.Tags = compact(e.Tags)
}

// compact trims every entry and drops blank ones.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// Validate checks the required fields, the mode enum and the non-empty lists.
func Validate(e *models.Event) error {
	required := []struct {
		field string
		value string
	}{
		{models.FieldTitle, e.Title},
		{models.FieldDescription, e.Description},
		{models.FieldOverview, e.Overview},
		{models.FieldImage, e.Image},
		{models.FieldVenue, e.Venue},
		{models.FieldLocation, e.Location},
		{models.FieldDate, e.Date},
		{models.FieldTime, e.Time},
		{models.FieldMode, string(e.Mode)},
		{models.FieldAudience, e.Audience},
		{models.FieldOrganizer, e.Organizer},
	}
	for _, r := range required {
		if r.value == "" {
			return apperr.Invalid(r.field, r.field+" is required")
		}
	}

	if !e.Mode.Valid() {
		return apperr.Invalid(models.FieldMode, "mode must be online, offline, or hybrid")
	}
	if len(e.Agenda) == 0 {
		return apperr.Invalid(models.FieldAgenda, "agenda must contain at least one item")
	}
	if len(e.Tags) == 0 {
		return apperr.Invalid(models.FieldTags, "tags must contain at least one item")
	}
	return nil
}

// Normalize re-derives slug, date and time for the touched source fields only.
// It rewrites e in place.
func Normalize(e *models.Event, touched models.FieldSet) error {
	if touched.Has(models.FieldTitle) {
		slug := Slugify(e.Title)
		if slug == "" {
			return apperr.Invalid(models.FieldTitle, "title must contain at least one letter or digit")
		}
		e.Slug = slug
	}

	if touched.Has(models.FieldDate) {
		date, err := NormalizeDate(e.Date)
		if err != nil {
			return err
		}
		e.Date = date
	}

	if touched.Has(models.FieldTime) {
		t, err := NormalizeTime(e.Time)
		if err != nil {
			return err
		}
		e.Time = t
	}
	return nil
}

// Prepare runs the full pre-persistence pipeline on a candidate event.
func Prepare(e *models.Event, touched models.FieldSet) error {
	trimFields(e)
	if err := Validate(e); err != nil {
		return err
	}
	return Normalize(e, touched)
}

package events

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devhub/apperr"

	"github.com/araddon/dateparse"
)

const dateLayout = "2006-01-02"

var (
	time24 = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	time12 = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9])\s?([aApP][mM])$`)
	digits = regexp.MustCompile(`^[0-9]+$`)
)

// zoneOffsets covers the abbreviations the parser cannot resolve on its own
// when reading in UTC. Offsets are seconds east of UTC.
var zoneOffsets = map[string]int{
	"EST": -5 * 3600, "EDT": -4 * 3600,
	"CST": -6 * 3600, "CDT": -5 * 3600,
	"MST": -7 * 3600, "MDT": -6 * 3600,
	"PST": -8 * 3600, "PDT": -7 * 3600,
	"AKST": -9 * 3600, "AKDT": -8 * 3600,
	"HST": -10 * 3600,
	"WET": 0, "WEST": 1 * 3600,
	"BST": 1 * 3600,
	"CET": 1 * 3600, "CEST": 2 * 3600,
	"EET": 2 * 3600, "EEST": 3 * 3600,
}

// resolveZone fixes up instants parsed with a zone abbreviation unknown to
// the parse location, which get a zero offset. Known abbreviations are
// re-read at their real offset; unknown ones are rejected.
func resolveZone(t time.Time) (time.Time, bool) {
	name, offset := t.Zone()
	if offset != 0 {
		return t, true
	}
	switch name {
	case "", "UTC", "GMT", "UT", "Z":
		return t, true
	}
	off, ok := zoneOffsets[strings.ToUpper(name)]
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, off)), true
}

// NormalizeDate parses raw as a calendar date and returns its UTC YYYY-MM-DD form.
// Values without a zone are read as UTC. Digit-only input is a date only
// when it is a four digit year; timestamps and YYYYMMDD are rejected.
func NormalizeDate(raw string) (string, error) {
	invalid := &apperr.ValidationError{Field: "date", Reason: "invalid date format"}

	raw = strings.TrimSpace(raw)
	if raw == "" || (digits.MatchString(raw) && len(raw) != 4) {
		return "", invalid
	}
	if d, err := time.Parse(dateLayout, raw); err == nil {
		return d.Format(dateLayout), nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return "", invalid
	}
	t, ok := resolveZone(t)
	if !ok {
		return "", invalid
	}
	return t.UTC().Format(dateLayout), nil
}

// NormalizeTime accepts H:MM, HH:MM or the 12-hour H:MM AM/PM forms and
// returns the 24-hour HH:MM form.
func NormalizeTime(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if m := time24.FindStringSubmatch(raw); m != nil {
		h, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", h, m[2]), nil
	}

	if m := time12.FindStringSubmatch(raw); m != nil {
		h, _ := strconv.Atoi(m[1])
		switch strings.ToUpper(m[3]) {
		case "PM":
			if h != 12 {
				h += 12
			}
		case "AM":
			if h == 12 {
				h = 0
			}
		}
		return fmt.Sprintf("%02d:%s", h, m[2]), nil
	}

	return "", &apperr.ValidationError{Field: "time", Reason: "invalid time format"}
}

package events

import (
	"regexp"
	"strings"
)

var (
	slugStrip      = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives the URL slug of a title.
//
//	Slugify("My Talk!")          // "my-talk"
//	Slugify("  Go -- Meetup  ")  // "go-meetup"
//
// Slugify(Slugify(s)) == Slugify(s) for every s.
func Slugify(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

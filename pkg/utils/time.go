package utils

import (
	"log"
	"time"
)

const DateLayout = "2006-01-02"

// LoadLocation resolves the reporting time zone. An empty name means the
// server's local zone; an unknown name falls back to it with a warning.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Failed to load timezone %q, falling back to server local time: %v", name, err)
		return time.Local
	}
	return loc
}

// DateString renders t as a YYYY-MM-DD batch key in the given location.
func DateString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

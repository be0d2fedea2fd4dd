package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var ErrUnparsableTime = errors.New("could not understand time")

// Layouts tried, in order, before falling back to natural language.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var naturalParser = newNaturalParser()

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseTime reads a user supplied timestamp. Layouts without an offset are
// read in loc; phrases such as "tomorrow at 5pm" are resolved relative to now.
// The result is always in UTC.
func ParseTime(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrUnparsableTime
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.UTC(), nil
		}
	}

	res, err := naturalParser.Parse(raw, now.In(loc))
	if err != nil || res == nil {
		return time.Time{}, ErrUnparsableTime
	}
	return res.Time.UTC(), nil
}

package article

import (
	"fmt"
	"time"
)

// Local date-time layouts, read as UTC. Fractional seconds are accepted
// after the seconds field by time.Parse.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime parses an ISO-8601 local date-time, or an RFC 3339
// timestamp carrying its own offset.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("invalid date-time %q: want ISO-8601 such as 2006-01-02T15:04:05", s)
}

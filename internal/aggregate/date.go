package aggregate

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// isoLayouts are the ISO-8601 shapes accepted for a bill date, tried in
// order. A space between date and time is normalized to "T" first.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date-time. Values without a zone are
// returned in UTC.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if len(v) > 10 && v[10] == ' ' {
		v = v[:10] + "T" + v[11:]
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("%q is not an ISO-8601 date", s)
}

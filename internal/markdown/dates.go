package markdown

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate interprets a metadata date written in any common layout. Values
// without a zone are read as UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// FormatDate renders a decoded timestamp back to metadata text: a plain day
// for midnight UTC values, RFC 3339 otherwise.
func FormatDate(value time.Time) string {
	utc := value.UTC()
	if utc.Hour() == 0 && utc.Minute() == 0 && utc.Second() == 0 && utc.Nanosecond() == 0 {
		return utc.Format("2006-01-02")
	}
	return value.Format(time.RFC3339)
}

// ABOUTME: Time parsing utilities for timestamps read from row stores
// ABOUTME: Accepts the RFC 3339, SQL and date-only forms that REST and SQL backends emit

package time

import (
	"strings"
	"time"
)

// Formats are tried in order. Layouts without a zone are read as UTC.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// Parse parses a timestamp in any supported format
func Parse(timeStr string) (time.Time, bool) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}, false
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package report

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// fallbackLayouts are tried for date strings that are not plain Y-M-D
// triples, for example full ISO timestamps embedded by date pickers.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	dateLayout,
}

// dayWindow is the half-open local-time interval [Start, End) identifying
// one calendar day. It doubles as the report's identity key and the range
// query boundary.
type dayWindow struct {
	Start time.Time
	End   time.Time
}

// normalizeDay converts a raw date representation into the day window of
// its calendar day in the given location. Two inputs denoting the same
// calendar day always yield an identical window, regardless of any embedded
// time-of-day or offset.
func normalizeDay(raw string, loc *time.Location) (dayWindow, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return dayWindow{}, ErrInvalidDateFormat
	}

	if parts := strings.Split(trimmed, "-"); len(parts) == 3 {
		year, errY := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		day, errD := strconv.Atoi(parts[2])
		if errY == nil && errM == nil && errD == nil {
			if year < 1 || month < 1 || month > 12 || day < 1 || day > daysInMonth(year, time.Month(month)) {
				return dayWindow{}, ErrInvalidDateValue
			}
			return windowAt(year, time.Month(month), day, loc), nil
		}
	}

	for _, layout := range fallbackLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		// Take the parsed value's own calendar date so that offset noise in
		// the input cannot shift the day.
		year, month, day := parsed.Date()
		return windowAt(year, month, day, loc), nil
	}

	return dayWindow{}, ErrInvalidDateFormat
}

func windowAt(year int, month time.Month, day int, loc *time.Location) dayWindow {
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return dayWindow{Start: start, End: start.AddDate(0, 0, 1)}
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

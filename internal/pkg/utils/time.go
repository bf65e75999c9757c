package utils

import (
	"time"

	"clinrec-service/internal/pkg/exceptions"
)

// Wall-clock layout accepted from the terminal, e.g. "2030-01-01T10:00".
const LocalDateTimeLayout = "2006-01-02T15:04"

// ParseLocalDateTime interprets a wall-clock value in the process's local
// timezone. This matches the upstream records' behaviour and is known to be
// unsafe for multi-region use.
func ParseLocalDateTime(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(LocalDateTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseTime(err)
	}
	return parsed, nil
}

// FormatInstant renders an absolute instant the way the store stores
// dateTime fields.
func FormatInstant(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseInstant reads a stored dateTime back into a time.Time.
func ParseInstant(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseTime(err)
	}
	return parsed, nil
}

// FormatLocal renders an instant as local wall-clock time for display.
func FormatLocal(t time.Time) string {
	return t.In(time.Local).Format(LocalDateTimeLayout)
}

package database

import "time"

// Timestamps are stored as fixed-width UTC text so rows stay readable with
// the sqlite3 CLI and sort lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func ParseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Package time contains time related helpers
package time

import "time"

// RFC3339 formats t in UTC using RFC 3339, or "" for a zero time
func RFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

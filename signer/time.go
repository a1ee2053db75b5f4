package signer

import "time"

// timestampFormat is the ISO 8601 layout of the Timestamp signing
// parameter, always UTC.
const timestampFormat = "2006-01-02T15:04:05Z"

// FormatTime formats t as a Timestamp signing parameter value.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

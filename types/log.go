package types

import "time"

// LogEntry represents one gateway call to be stored in the database
type LogEntry struct {
	RequestID    string
	Service      string
	Method       string
	URL          string
	RequestBody  string
	ResponseBody string
	StatusCode   int
	DurationMs   int64
	Error        string
	CreatedAt    time.Time
}

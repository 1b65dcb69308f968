package db

import "time"

// Cut status values stored in cuts.status.
const (
	StatusOK            = "ok"
	StatusParseFailed   = "parse_failed"
	StatusFetchFailed   = "fetch_failed"
	StatusTrimFailed    = "trim_failed"
	StatusCleanupFailed = "cleanup_failed"
)

// Cut represents a row in the cuts table.
type Cut struct {
	ID           string
	URL          string
	VideoID      string
	Title        string
	StartSeconds int
	EndSeconds   int
	Output       string
	Status       string
	Error        string
	Quality      string
	SizeBytes    int64
	CreatedAt    time.Time
}

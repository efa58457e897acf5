package store

import "time"

// Run is one recorded diagnostic pass.
type Run struct {
	ID            int64
	StartedAt     time.Time
	Duration      time.Duration
	ChecksRun     int
	AdvisoryCount int
}

// Advisory is one stored advisory from a run, in its original run order.
type Advisory struct {
	RunID    int64
	Position int
	Check    string
	Message  string
}

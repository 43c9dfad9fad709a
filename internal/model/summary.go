package model

import "time"

// RunSummary captures metrics from a single classification run.
type RunSummary struct {
	InputPath        string
	InputSHA256      string
	TablesSHA256     string
	OutputPath       string
	RowsRead         int64
	RowsClassified   int64
	RowsRejected     int64
	RowsUnclassified int64
	ServicesByCode   map[string]int64
	DurationTables   time.Duration
	DurationClassify time.Duration
	DurationTotal    time.Duration
}

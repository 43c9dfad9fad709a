// Package exitcode defines the process exit statuses of msgrouper.
package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2 // input header or schema mismatch
	TablesError     = 3
	WriteError      = 4
	Interrupted     = 130
)

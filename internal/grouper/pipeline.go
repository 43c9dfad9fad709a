// Package grouper runs batch classification of case files.
package grouper

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/records"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/tables"
)

// Pipeline phases reported in PipelineError.
const (
	PhaseTables   = "tables"
	PhaseInput    = "input"
	PhaseClassify = "classify"
	PhaseOutput   = "output"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// LoadTables loads the annex tables from dir and logs their size.
func LoadTables(log zerolog.Logger, dir string) (*tables.Tables, time.Duration, error) {
	start := time.Now()
	t, err := tables.Load(dir)
	if err != nil {
		return nil, 0, &PipelineError{Phase: PhaseTables, Err: err}
	}
	dur := time.Since(start)
	for _, u := range t.UnknownCriteria() {
		log.Warn().
			Str("table", u.Table).
			Str("criterion", u.Text).
			Str("service", u.Service).
			Msg("unknown criterion, row will never match")
	}
	log.Info().
		Str("dir", dir).
		Int("tables", len(t.Summary())).
		Int("rows", t.TotalRows()).
		Int("unknown_criteria", t.TotalUnknownCriteria()).
		Str("sha256", t.SHA256()).
		Str("duration", dur.String()).
		Msg("annex tables loaded")
	return t, dur, nil
}

// Run executes the classification pipeline: preflight → classify → close.
// Nothing is written when preflight fails, and a partially written output
// file is removed when a later phase fails.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, t *tables.Tables) (*model.RunSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.InputPath).Msg("starting preflight")
	pf, err := Preflight(log, cfg)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseInput, Err: err}
	}
	defer pf.Source.Close()

	sink, err := records.NewSink(pf.OutputPath, cfg.OutputFormat, cfg.Delimiters)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseOutput, Err: err}
	}

	// Phase 2: Classify
	log.Info().Str("output", pf.OutputPath).Str("format", cfg.OutputFormat).Msg("starting classification")
	res, err := Classify(ctx, log, pf.Source, sink, t, cfg)
	if err != nil {
		sink.Close()
		removeOutput(log, pf.OutputPath)
		return nil, err
	}

	// Phase 3: Close output
	if err := sink.Close(); err != nil {
		removeOutput(log, pf.OutputPath)
		return nil, &PipelineError{Phase: PhaseOutput, Err: err}
	}

	summary := &model.RunSummary{
		InputPath:        pf.InputPath,
		InputSHA256:      pf.InputSHA256,
		TablesSHA256:     t.SHA256(),
		OutputPath:       pf.OutputPath,
		RowsRead:         res.RowsRead,
		RowsClassified:   res.RowsClassified,
		RowsRejected:     res.RowsRejected,
		RowsUnclassified: res.RowsUnclassified,
		ServicesByCode:   res.ServicesByCode,
		DurationClassify: res.Duration,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_classified", summary.RowsClassified).
		Int64("rows_rejected", summary.RowsRejected).
		Int64("rows_unclassified", summary.RowsUnclassified).
		Str("output", summary.OutputPath).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("classification complete")

	return summary, nil
}

func removeOutput(log zerolog.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("output", path).Msg("could not remove partial output")
	}
}

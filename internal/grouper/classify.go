package grouper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/aggregate"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/casebuilder"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/records"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/tables"
)

// ClassifyResult holds metrics from the classification phase.
type ClassifyResult struct {
	RowsRead         int64
	RowsClassified   int64
	RowsRejected     int64
	RowsUnclassified int64
	ServicesByCode   map[string]int64
	Duration         time.Duration
}

// Classify streams rows from src, classifies each case and writes one
// output row per input row to sink. Cases rejected in strict mode are
// written with model.ErrorValue in place of services and levels.
func Classify(ctx context.Context, log zerolog.Logger, src records.Source, sink records.Sink, t *tables.Tables, cfg *config.Config) (*ClassifyResult, error) {
	start := time.Now()
	cl := aggregate.NewClassifier(t)
	buildOpts := casebuilder.Options{Lenient: cfg.EvaluateIncomplete, Delimiters: cfg.Delimiters}
	classifyOpts := aggregate.Options{
		AllProceduresPrimary: cfg.AllProceduresPrimary,
		KeepDuplicates:       cfg.KeepDuplicates,
	}
	sep := cfg.Delimiters.List

	res := &ClassifyResult{ServicesByCode: make(map[string]int64)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, &PipelineError{Phase: PhaseClassify, Err: err}
		}

		raw, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, records.ErrRow) {
			return nil, &PipelineError{Phase: PhaseInput, Err: fmt.Errorf("read row %d: %w", res.RowsRead+1, err)}
		}
		res.RowsRead++

		var row model.OutputRow
		if err != nil {
			res.RowsRejected++
			log.Error().Err(err).Int64("row", res.RowsRead).Str("case_id", raw[model.FieldID]).Msg("row rejected")
			row = model.NewOutputRow(raw, model.ErrorValue, model.ErrorValue)
		} else {
			row = classifyRow(log, cl, raw, buildOpts, classifyOpts, sep, res)
		}
		if err := sink.Write(row); err != nil {
			return nil, &PipelineError{Phase: PhaseOutput, Err: fmt.Errorf("write row %d: %w", res.RowsRead, err)}
		}

		if cfg.ProgressEvery > 0 && res.RowsRead%int64(cfg.ProgressEvery) == 0 {
			log.Info().Int64("rows_read", res.RowsRead).Int64("rows_rejected", res.RowsRejected).Msg("progress")
		}
	}

	res.Duration = time.Since(start)
	rowsPerSec := float64(0)
	if secs := res.Duration.Seconds(); secs > 0 {
		rowsPerSec = float64(res.RowsRead) / secs
	}
	log.Info().
		Int64("rows_read", res.RowsRead).
		Int64("rows_classified", res.RowsClassified).
		Int64("rows_rejected", res.RowsRejected).
		Int64("rows_written", sink.Count()).
		Str("duration", res.Duration.String()).
		Float64("rows_per_sec", rowsPerSec).
		Msg("classification phase complete")

	return res, nil
}

func classifyRow(log zerolog.Logger, cl *aggregate.Classifier, raw map[string]string, buildOpts casebuilder.Options, classifyOpts aggregate.Options, sep string, res *ClassifyResult) model.OutputRow {
	c, err := casebuilder.Build(raw, buildOpts, log)
	if err != nil {
		res.RowsRejected++
		return model.NewOutputRow(raw, model.ErrorValue, model.ErrorValue)
	}

	out := cl.Classify(c, classifyOpts)
	res.RowsClassified++
	if out.IsUnclassified() {
		res.RowsUnclassified++
	}
	for _, code := range out.Codes {
		res.ServicesByCode[code]++
	}
	if raw[model.FieldID] == "" {
		// Lenient mode generated an id.
		raw[model.FieldID] = c.ID
	}
	return model.NewOutputRow(raw, out.CodesString(sep), out.LevelsString(sep))
}

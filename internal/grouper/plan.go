package grouper

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/records"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/tables"
)

// PlanResult describes a dry run over the first rows of an input file.
type PlanResult struct {
	InputPath   string
	InputSHA256 string
	FileSize    int64
	OutputPath  string
	TotalRows   int64 // -1 when unknown
	Sample      *ClassifyResult
}

// Plan validates the input and classifies at most sampleSize rows without
// writing anything. sampleSize <= 0 classifies the whole file.
func Plan(ctx context.Context, log zerolog.Logger, cfg *config.Config, t *tables.Tables, sampleSize int64) (*PlanResult, error) {
	pf, err := Preflight(log, cfg)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseInput, Err: err}
	}
	defer pf.Source.Close()

	var src records.Source = pf.Source
	if sampleSize > 0 {
		src = &limitSource{Source: src, remaining: sampleSize}
	}
	res, err := Classify(ctx, log, src, &discardSink{}, t, cfg)
	if err != nil {
		return nil, err
	}
	return &PlanResult{
		InputPath:   pf.InputPath,
		InputSHA256: pf.InputSHA256,
		FileSize:    pf.FileSize,
		OutputPath:  pf.OutputPath,
		TotalRows:   pf.TotalRows,
		Sample:      res,
	}, nil
}

// limitSource stops after a fixed number of records.
type limitSource struct {
	records.Source
	remaining int64
}

func (s *limitSource) Next() (map[string]string, error) {
	if s.remaining <= 0 {
		return nil, io.EOF
	}
	s.remaining--
	return s.Source.Next()
}

type discardSink struct {
	count int64
}

func (s *discardSink) Write(model.OutputRow) error {
	s.count++
	return nil
}

func (s *discardSink) Close() error { return nil }

func (s *discardSink) Count() int64 { return s.count }

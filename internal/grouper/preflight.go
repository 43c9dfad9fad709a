package grouper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/normalize"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/records"
)

// PreflightResult holds everything resolved before any output is written.
type PreflightResult struct {
	InputPath   string
	InputSHA256 string
	FileSize    int64
	OutputPath  string
	// TotalRows is known for Parquet inputs only, -1 otherwise.
	TotalRows int64
	// Source is open and positioned after the validated header.
	Source records.Source
}

// Preflight hashes the input, validates its header or schema and resolves
// the output path.
func Preflight(log zerolog.Logger, cfg *config.Config) (*PreflightResult, error) {
	sha, err := normalize.FileHash(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}
	stat, err := os.Stat(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	out := cfg.OutputPath
	if out == "" {
		out = DefaultOutputPath(cfg.InputPath, cfg.OutputFormat)
	}
	if sameFile(out, cfg.InputPath) {
		return nil, fmt.Errorf("output path %s would overwrite the input", out)
	}

	src, err := records.OpenSource(cfg.InputPath, cfg.Delimiters)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}

	total := int64(-1)
	if ps, ok := src.(*records.ParquetSource); ok {
		total = ps.NumRows()
	}

	log.Info().
		Str("sha256", sha).
		Int64("size", stat.Size()).
		Int64("total_rows", total).
		Str("output", out).
		Msg("preflight complete")

	return &PreflightResult{
		InputPath:   cfg.InputPath,
		InputSHA256: sha,
		FileSize:    stat.Size(),
		OutputPath:  out,
		TotalRows:   total,
		Source:      src,
	}, nil
}

// DefaultOutputPath derives "<stem>_output<ext>" next to the input. The
// extension follows the output format when it differs from the input's.
func DefaultOutputPath(input, format string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	switch {
	case format == config.FormatParquet:
		ext = ".parquet"
	case records.IsParquet(input):
		ext = ".csv"
	}
	return stem + "_output" + ext
}

func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

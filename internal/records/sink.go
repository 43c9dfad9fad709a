package records

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

// Sink receives classified rows in input order.
type Sink interface {
	Write(row model.OutputRow) error
	// Close flushes buffered rows. The output is complete only after Close
	// returns nil.
	Close() error
	Count() int64
}

// NewSink creates the output file at path in the given format.
func NewSink(path, format string, d config.Delimiters) (Sink, error) {
	switch format {
	case config.FormatCSV:
		return NewCSVSink(path, d)
	case config.FormatParquet:
		return NewParquetSink(path)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// CSVSink writes delimited text with a header row.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
	count  int64
}

// NewCSVSink creates path and writes the header.
func NewCSVSink(path string, d config.Delimiters) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	w := csv.NewWriter(f)
	w.Comma = d.ColumnRune()
	if err := w.Write(model.OutputColumns()); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &CSVSink{file: f, writer: w}, nil
}

func (s *CSVSink) Write(row model.OutputRow) error {
	if err := s.writer.Write(row.Values()); err != nil {
		return fmt.Errorf("write output row: %w", err)
	}
	s.count++
	return nil
}

func (s *CSVSink) Count() int64 { return s.count }

func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return s.file.Close()
}

// parquetBatch is how many rows are buffered before each GenericWriter.Write.
const parquetBatch = 10_000

// ParquetSink writes OutputRow records to a zstd compressed Parquet file.
type ParquetSink struct {
	file   *os.File
	writer *parquet.GenericWriter[model.OutputRow]
	buf    []model.OutputRow
	count  int64
}

// NewParquetSink creates path.
func NewParquetSink(path string) (*ParquetSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	w := parquet.NewGenericWriter[model.OutputRow](f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.PageBufferSize(8*1024),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("msgrouper", "1.0", ""),
	)
	return &ParquetSink{file: f, writer: w, buf: make([]model.OutputRow, 0, parquetBatch)}, nil
}

func (s *ParquetSink) Write(row model.OutputRow) error {
	s.buf = append(s.buf, row)
	s.count++
	if len(s.buf) == cap(s.buf) {
		return s.flush()
	}
	return nil
}

func (s *ParquetSink) flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	if _, err := s.writer.Write(s.buf); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	s.buf = s.buf[:0]
	return nil
}

func (s *ParquetSink) Count() int64 { return s.count }

// Close flushes the final row group and closes the file.
func (s *ParquetSink) Close() error {
	if err := s.flush(); err != nil {
		s.file.Close()
		return err
	}
	if err := s.writer.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return s.file.Close()
}

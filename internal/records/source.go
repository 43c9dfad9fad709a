// Package records reads case records and writes classified rows.
package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

// Source yields raw case records keyed by input column name.
type Source interface {
	// Next returns the next record or io.EOF.
	Next() (map[string]string, error)
	Close() error
}

// OpenSource opens path as Parquet when its extension is .parquet and as
// delimited text otherwise. The header or schema is validated before the
// source is returned.
func OpenSource(path string, d config.Delimiters) (Source, error) {
	if IsParquet(path) {
		return OpenParquet(path)
	}
	return OpenCSV(path, d)
}

// IsParquet reports whether path names a Parquet file.
func IsParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}

// CSVSource reads delimited text with a header row.
type CSVSource struct {
	file   *os.File
	reader *csv.Reader
	header []string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// OpenCSV opens a delimited input file and validates its header.
func OpenCSV(path string, d config.Delimiters) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}

	r := csv.NewReader(newBOMSkipper(f))
	r.Comma = d.ColumnRune()
	r.LazyQuotes = true
	r.ReuseRecord = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("%w: empty file", ErrSchema)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	if err := ValidateHeader(header); err != nil {
		f.Close()
		return nil, err
	}
	return &CSVSource{file: f, reader: r, header: header}, nil
}

// Next reads the next record. A record that cannot be split into the header
// columns yields an error wrapping ErrRow; the source stays usable and the
// returned map holds whatever fields were read.
func (s *CSVSource) Next() (map[string]string, error) {
	rec, err := s.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return map[string]string{}, fmt.Errorf("%w: %v", ErrRow, err)
		}
		return nil, fmt.Errorf("read input row: %w", err)
	}
	raw := make(map[string]string, len(s.header))
	for i, col := range s.header {
		if i < len(rec) {
			raw[col] = rec[i]
		}
	}
	if len(rec) != len(s.header) {
		line, _ := s.reader.FieldPos(0)
		return raw, fmt.Errorf("%w: line %d has %d fields, expected %d", ErrRow, line, len(rec), len(s.header))
	}
	return raw, nil
}

// Close releases the file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

// bomSkipper drops a leading UTF-8 byte order mark.
type bomSkipper struct {
	r       io.Reader
	checked bool
}

func newBOMSkipper(r io.Reader) *bomSkipper {
	return &bomSkipper{r: r}
}

func (b *bomSkipper) Read(p []byte) (int, error) {
	if b.checked {
		return b.r.Read(p)
	}
	b.checked = true
	head := make([]byte, len(utf8BOM))
	n, err := io.ReadFull(b.r, head)
	head = head[:n]
	if !bytes.Equal(head, utf8BOM) {
		b.r = io.MultiReader(bytes.NewReader(head), b.r)
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}
	return b.r.Read(p)
}

// rowReader is the part of parquet.GenericReader that ParquetSource uses.
type rowReader interface {
	Read(rows []model.InputRow) (int, error)
	NumRows() int64
	Close() error
}

// ParquetSource streams InputRow records from a Parquet file.
type ParquetSource struct {
	file   *os.File
	reader rowReader
	buf    []model.InputRow
	// pending is a read error that arrived together with the last row.
	pending error
}

// OpenParquet opens a Parquet input file and validates its schema.
func OpenParquet(path string) (*ParquetSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if err := ValidateSchema(pf.Schema()); err != nil {
		f.Close()
		return nil, err
	}

	r := parquet.NewGenericReader[model.InputRow](pf)
	return &ParquetSource{file: f, reader: r, buf: make([]model.InputRow, 1)}, nil
}

// NumRows returns the total number of rows in the Parquet file.
func (s *ParquetSource) NumRows() int64 {
	return s.reader.NumRows()
}

// Next reads the next record. An error returned along with a row is
// reported by the following call.
func (s *ParquetSource) Next() (map[string]string, error) {
	if err := s.pending; err != nil {
		s.pending = nil
		return nil, err
	}
	n, err := s.reader.Read(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("read parquet rows: %w", err)
	}
	if n == 1 {
		if err != nil && !errors.Is(err, io.EOF) {
			s.pending = err
		}
		return s.buf[0].Raw(), nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	return nil, err
}

// Close releases all resources.
func (s *ParquetSource) Close() error {
	if err := s.reader.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

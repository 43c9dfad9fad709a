package tables

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/normalize"
)

// Delimiter separates columns in annex table files.
const Delimiter = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RawRow is one annex table row keyed by column name.
type RawRow map[string]string

// RawTables holds the raw rows of every annex table keyed by table name.
type RawTables map[string][]RawRow

// Load reads and prepares all annex tables from dir.
func Load(dir string) (*Tables, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("tables directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tables directory: %s is not a directory", dir)
	}
	fsys := os.DirFS(dir)
	raw, err := LoadRaw(fsys)
	if err != nil {
		return nil, err
	}
	t, err := Prepare(raw)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(requiredColumns))
	for _, name := range TableNames() {
		files = append(files, name+".csv")
	}
	if t.sha256, err = normalize.FSHash(fsys, files); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadRaw reads every required table from fsys. A missing file or a missing
// required column is an error.
func LoadRaw(fsys fs.FS) (RawTables, error) {
	raw := make(RawTables, len(requiredColumns))
	for _, name := range TableNames() {
		rows, err := readTable(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		raw[name] = rows
	}
	return raw, nil
}

func readTable(fsys fs.FS, name string) ([]RawRow, error) {
	data, err := fs.ReadFile(fsys, name+".csv")
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = Delimiter
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for _, col := range requiredColumns[name] {
		if !slices.Contains(header, col) {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []RawRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make(RawRow, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// mkfixture creates a small representative Parquet case file from a larger
// delimited one. Two-pass: first scans all rows into trait buckets, then
// selects the best N.
// Usage: go run ./cmd/mkfixture --in cases.csv --out testdata/cases-small.parquet --rows 200
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/records"
)

func main() {
	in := flag.String("in", "cases.csv", "input case file (delimited)")
	out := flag.String("out", "cases-small.parquet", "output parquet")
	maxRows := flag.Int("rows", 200, "max rows to output")
	checkOnly := flag.Bool("check", false, "only print stats, don't write")
	flag.Parse()

	src, err := records.OpenCSV(*in, config.DefaultDelimiters())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	// Pass 1: read ALL rows, bucket by interesting traits.
	type bucket struct {
		name  string
		match func(model.InputRow) bool
		rows  []model.InputRow
		want  int
		total int
	}
	buckets := []*bucket{
		{name: "newborn", want: 40, match: func(r model.InputRow) bool { return r.Age == "0" }},
		{name: "drg", want: 30, match: func(r model.InputRow) bool { return r.DRG != "" }},
		{name: "markers", want: 30, match: func(r model.InputRow) bool { return r.Markers != "" }},
		{name: "procedures", want: 40, match: func(r model.InputRow) bool { return r.Procedures != "" }},
		{name: "ventilation", want: 20, match: func(r model.InputRow) bool { return r.VentilationHours != "" && r.VentilationHours != "0" }},
	}
	var general []model.InputRow

	var totalRead int
	for {
		raw, readErr := src.Next()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", readErr)
			os.Exit(1)
		}
		totalRead++
		row := inputRow(raw)

		placed := false
		for _, b := range buckets {
			if !b.match(row) {
				continue
			}
			b.total++
			if !placed && len(b.rows) < b.want {
				b.rows = append(b.rows, row)
				placed = true
			}
		}
		if !placed && len(general) < *maxRows {
			general = append(general, row)
		}
	}
	fmt.Printf("Scanned %d rows\n", totalRead)

	if *checkOnly {
		for _, b := range buckets {
			fmt.Printf("  %-12s %d\n", b.name, b.total)
		}
		return
	}

	// Merge buckets in priority order
	var selected []model.InputRow
	for _, b := range buckets {
		for _, row := range b.rows {
			if len(selected) >= *maxRows {
				break
			}
			selected = append(selected, row)
		}
	}
	for _, row := range general {
		if len(selected) >= *maxRows {
			break
		}
		selected = append(selected, row)
	}

	// Write output
	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	writer := goparquet.NewGenericWriter[model.InputRow](outFile)
	if _, err := writer.Write(selected); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(selected), *out)
	for _, b := range buckets {
		fmt.Printf("  %-12s %d of %d\n", b.name, len(b.rows), b.total)
	}
}

func inputRow(raw map[string]string) model.InputRow {
	return model.InputRow{
		ID:               raw[model.FieldID],
		Age:              raw[model.FieldAge],
		Weight:           raw[model.FieldWeight],
		VentilationHours: raw[model.FieldVentilationHours],
		Diagnoses:        raw[model.FieldDiagnoses],
		Procedures:       raw[model.FieldProcedures],
		Markers:          raw[model.FieldMarkers],
		DRG:              raw[model.FieldDRG],
		AdmissionType:    raw[model.FieldAdmissionType],
	}
}

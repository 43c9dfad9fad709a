// Package casebuilder turns raw input records into validated cases.
package casebuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/normalize"
)

// Options controls validation.
type Options struct {
	// Lenient keeps evaluating cases with missing or malformed fields.
	// Invalid values become absent and are logged as warnings.
	Lenient    bool
	Delimiters config.Delimiters
}

const (
	minAdmissionType = 1
	maxAdmissionType = 9
	procedureParts   = 3 // code, location, date
	markerParts      = 2 // code, value
)

// builder accumulates field problems for one record.
type builder struct {
	opts   Options
	log    zerolog.Logger
	caseID string
	errs   []FieldError
}

func (b *builder) fail(field, value, reason string) {
	b.errs = append(b.errs, FieldError{Field: field, Value: value, Reason: reason})
	ev := b.log.Error()
	if b.opts.Lenient {
		ev = b.log.Warn()
	}
	ev.Str("case_id", b.caseID).Str("field", field).Str("value", value).Msg(reason)
}

// Build validates raw and returns the case it describes. Every field listed
// in model.InputColumns is read; absent keys count as empty values.
//
// In strict mode a *ValidationError is returned when a required value is
// missing or malformed. In lenient mode problems are logged and the case is
// always returned.
func Build(raw map[string]string, opts Options, log zerolog.Logger) (*model.Case, error) {
	b := &builder{opts: opts, log: log, caseID: raw[model.FieldID]}

	if b.caseID == "" {
		if !opts.Lenient {
			b.fail(model.FieldID, "", "missing id")
			return nil, &ValidationError{Fields: b.errs}
		}
		b.caseID = strings.ReplaceAll(uuid.NewString(), "-", "")
		log.Warn().Str("case_id", b.caseID).Str("field", model.FieldID).Msg("missing id, generated a new one")
	}

	c := &model.Case{ID: b.caseID}
	c.Age = b.digits(model.FieldAge, raw[model.FieldAge])
	c.Weight = b.weight(raw[model.FieldWeight], c.Age)
	c.VentilationHours = b.digits(model.FieldVentilationHours, raw[model.FieldVentilationHours])
	c.AdmissionType = b.admissionType(raw[model.FieldAdmissionType])

	c.Procedures = b.procedures(raw[model.FieldProcedures])
	c.Markers = b.markers(raw[model.FieldMarkers])
	c.Diagnoses = b.diagnoses(raw[model.FieldDiagnoses])

	if drg := normalize.Code(raw[model.FieldDRG]); drg != "" {
		c.DRG = &drg
	}

	if len(b.errs) > 0 && !opts.Lenient {
		return nil, &ValidationError{CaseID: c.ID, Fields: b.errs}
	}
	return c, nil
}

// digits parses a non-negative integer written in ASCII digits only.
func (b *builder) digits(field, s string) *int {
	if !isDigits(s) {
		b.fail(field, s, "expected a non-negative integer")
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		b.fail(field, s, err.Error())
		return nil
	}
	return &n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// weight parses the weight in grams. Zero and unparseable values are
// treated as absent. Both are errors only for newborns, so a newborn never
// passes strict validation without a weight.
func (b *builder) weight(s string, age *int) *float64 {
	newborn := age != nil && *age == 0

	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		if newborn {
			b.fail(model.FieldWeight, s, "expected a number")
		}
		return nil
	}
	if newborn && w == 0 {
		b.fail(model.FieldWeight, s, "weight of a newborn cannot be 0")
	}
	if w == 0 {
		return nil
	}
	return &w
}

func (b *builder) admissionType(s string) *int {
	if !isDigits(s) {
		b.fail(model.FieldAdmissionType, s, "expected an integer")
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < minAdmissionType || n > maxAdmissionType {
		b.fail(model.FieldAdmissionType, s, fmt.Sprintf("out of range %d-%d", minAdmissionType, maxAdmissionType))
		return nil
	}
	return &n
}

// procedures parses "code&location&date" entries. Only the first entry may
// be empty, meaning no primary procedure was reported. A malformed list is
// dropped as a whole.
func (b *builder) procedures(s string) []string {
	if s == "" {
		return nil
	}
	entries := strings.Split(s, b.opts.Delimiters.List)
	procs := make([]string, 0, len(entries))
	for i, e := range entries {
		if i == 0 && e == "" {
			procs = append(procs, "")
			continue
		}
		parts := strings.Split(e, b.opts.Delimiters.SubField)
		code := ""
		if len(parts) == procedureParts {
			code = normalize.Code(parts[0])
		}
		if code == "" {
			b.fail(model.FieldProcedures, s, fmt.Sprintf("invalid procedure %q, expected code%slocation%sdate",
				e, b.opts.Delimiters.SubField, b.opts.Delimiters.SubField))
			return nil
		}
		procs = append(procs, code)
	}
	return procs
}

func (b *builder) markers(s string) []model.Marker {
	if s == "" {
		return nil
	}
	entries := strings.Split(s, b.opts.Delimiters.List)
	markers := make([]model.Marker, 0, len(entries))
	for _, e := range entries {
		parts := strings.Split(e, b.opts.Delimiters.SubField)
		if len(parts) != markerParts || parts[0] == "" || parts[1] == "" {
			b.fail(model.FieldMarkers, s, fmt.Sprintf("invalid marker %q, expected code%svalue", e, b.opts.Delimiters.SubField))
			return nil
		}
		markers = append(markers, model.Marker{Code: parts[0], Value: parts[1]})
	}
	return markers
}

func (b *builder) diagnoses(s string) []string {
	if s == "" {
		return nil
	}
	entries := strings.Split(s, b.opts.Delimiters.List)
	diags := make([]string, 0, len(entries))
	for _, e := range entries {
		code := normalize.Code(e)
		if code == "" {
			b.fail(model.FieldDiagnoses, s, fmt.Sprintf("invalid diagnosis %q", e))
			return nil
		}
		diags = append(diags, code)
	}
	return diags
}

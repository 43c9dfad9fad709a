package annex

import (
	"strings"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

// markerServices evaluates annex 17: a reported marker alone assigns a service.
func (e *Evaluator) markerServices(c *model.Case) []string {
	if len(c.Markers) == 0 {
		return nil
	}
	var codes []string
	for _, r := range e.t.Markers {
		if markerIn(r.Marker, c.Markers) {
			codes = append(codes, r.Service)
		}
	}
	return codes
}

// markerProcedures evaluates annexes 7a and 8a: a marker together with any
// reported procedure of the row.
func (e *Evaluator) markerProcedures(c *model.Case) []string {
	child, known := c.Child()
	if len(c.Procedures) == 0 || len(c.Markers) == 0 || !known {
		return nil
	}
	var codes []string
	for _, r := range e.t.MarkerProcedure.For(child) {
		if c.HasProcedure(r.Procedure) && markerIn(r.Marker, c.Markers) {
			codes = append(codes, r.Service)
		}
	}
	return codes
}

// markerDiagnosis evaluates annex 9a. It applies to adults only and matches
// the row diagnosis as a prefix of the primary diagnosis.
func (e *Evaluator) markerDiagnosis(c *model.Case) []string {
	child, known := c.Child()
	primary, err := c.PrimaryDiagnosis()
	if err != nil || len(c.Markers) == 0 || !known || child {
		return nil
	}
	var codes []string
	for _, r := range e.t.MarkerDiagnosis {
		if strings.HasPrefix(primary, r.DiagnosisPrefix) && markerIn(r.Marker, c.Markers) {
			codes = append(codes, r.Service)
		}
	}
	return codes
}

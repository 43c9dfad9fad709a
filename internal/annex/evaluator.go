// Package annex assigns medical service codes to a case by evaluating the
// annex rule tables of regulation 531/2023 in their fixed order.
package annex

import (
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/tables"
)

// Evaluator evaluates cases against a prepared set of annex tables. It holds
// no mutable state and is safe for concurrent use.
type Evaluator struct {
	t *tables.Tables

	// group name -> member codes, resolved once from the group catalogs
	childProcedureGroups map[string]tables.CodeSet
	adultProcedureGroups map[string]tables.CodeSet
	diagnosisGroups      map[string]tables.CodeSet
}

// NewEvaluator returns an Evaluator over t. t must not be modified afterwards.
func NewEvaluator(t *tables.Tables) *Evaluator {
	return &Evaluator{
		t:                    t,
		childProcedureGroups: groupIndex(t.ProcedureGroups.Children),
		adultProcedureGroups: groupIndex(t.ProcedureGroups.Adults),
		diagnosisGroups:      groupIndex(t.DiagnosisGroups),
	}
}

func (e *Evaluator) procedureGroups(child bool) map[string]tables.CodeSet {
	if child {
		return e.childProcedureGroups
	}
	return e.adultProcedureGroups
}

func groupIndex(rows []tables.GroupMemberRow) map[string]tables.CodeSet {
	idx := make(map[string]tables.CodeSet)
	for _, r := range rows {
		set, ok := idx[r.Group]
		if !ok {
			set = make(tables.CodeSet)
			idx[r.Group] = set
		}
		set[r.Code] = struct{}{}
	}
	return idx
}

// Evaluate returns the service codes of every matching annex row in annex
// order. Duplicates are kept. An empty result means no annex applies.
//
// With allowAnyPrimary, annexes keyed on the primary procedure are also
// evaluated with each other procedure promoted to primary.
func (e *Evaluator) Evaluate(c *model.Case, allowAnyPrimary bool) []string {
	var codes []string
	codes = append(codes, e.markerServices(c)...)
	codes = append(codes, e.organDonor(c)...)
	codes = append(codes, e.newborn(c)...)
	codes = append(codes, e.trauma(c)...)
	codes = append(codes, e.procedurePairs(c, allowAnyPrimary)...)
	codes = append(codes, e.markerProcedures(c)...)
	codes = append(codes, e.procedureDiagnosis(c, allowAnyPrimary)...)
	codes = append(codes, e.markerDiagnosis(c)...)
	codes = append(codes, e.diagnosisPairs(c)...)
	codes = append(codes, e.singleProcedure(c, allowAnyPrimary)...)
	codes = append(codes, e.singleDiagnosis(c)...)
	return codes
}

// explore runs rule on c and, when allowAnyPrimary is set, on every derived
// case with procedure i promoted to primary, appending results in order.
func explore(c *model.Case, allowAnyPrimary bool, rule func(*model.Case) []string) []string {
	codes := rule(c)
	if !allowAnyPrimary {
		return codes
	}
	for i := 1; i < len(c.Procedures); i++ {
		codes = append(codes, rule(c.WithPrimaryProcedure(i))...)
	}
	return codes
}

func markerIn(m *model.Marker, markers []model.Marker) bool {
	return m != nil && model.ContainsMarker(markers, *m)
}

package tables

import "github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"

// Tables holds every prepared annex table. It is built once by Prepare and
// only read afterwards, so a single instance can be shared freely.
type Tables struct {
	Levels LevelTable

	Markers []MarkerRow // p17

	DonorComa             CodeSet // p16
	DonorBrainSwelling    CodeSet
	DonorSelectedDiseases CodeSet

	Newborn               []NewbornRow // p5
	SignificantProcedures CodeSet
	SevereNewbornProblems CodeSet

	Trauma ByAge[TraumaRow] // p6

	ProcedurePairs  ByAge[ServiceCodeRow]     // p7, p8 primary procedures
	ProcedureGroups ByAge[GroupMemberRow]     // p7, p8 secondary procedure groups
	MarkerProcedure ByAge[MarkerProcedureRow] // p7a, p8a

	ProcedureDiagnosis ByAge[ProcedureDiagnosisRow] // p9
	DiagnosisGroups    []GroupMemberRow

	MarkerDiagnosis []MarkerDiagnosisRow // p9a, adults only

	DiagnosisPairPrimary CodeSet               // p10
	DiagnosisPairs       ByAge[ServiceCodeRow] // p10 secondary diagnoses

	Procedures ByAge[ServiceCodeRow] // p12, p13
	Diagnoses  ByAge[ServiceCodeRow] // p14, p15

	stats  []TableStats
	sha256 string
}

// ByAge holds the child and adult variant of an annex table.
type ByAge[T any] struct {
	Children []T
	Adults   []T
}

// For returns the child table when child is true, the adult table otherwise.
func (b ByAge[T]) For(child bool) []T {
	if child {
		return b.Children
	}
	return b.Adults
}

// CodeSet is a set of normalized codes.
type CodeSet map[string]struct{}

// Has reports whether code is in the set.
func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// HasAny reports whether any of codes is in the set.
func (s CodeSet) HasAny(codes []string) bool {
	for _, c := range codes {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Count returns how many elements of codes are in the set, duplicates included.
func (s CodeSet) Count(codes []string) int {
	n := 0
	for _, c := range codes {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// MarkerRow assigns Service when Marker was reported.
type MarkerRow struct {
	Marker  *model.Marker
	Service string
}

// NewbornRow is a p5_NOV row: DRG prefix plus an optional criterion.
type NewbornRow struct {
	DRG           string
	Criterion     NewbornCriterion
	CriterionText string
	Service       string
}

// TraumaRow is a p6_DRGD row.
type TraumaRow struct {
	DRG           string
	Criterion     TraumaCriterion
	CriterionText string
	Service       string
}

// ServiceCodeRow maps a single procedure or diagnosis code to a service.
type ServiceCodeRow struct {
	Code    string
	Service string
}

// GroupMemberRow states that Code belongs to the named group.
type GroupMemberRow struct {
	Group string
	Code  string
}

// MarkerProcedureRow is a p7a/p8a row.
type MarkerProcedureRow struct {
	Procedure string
	Marker    *model.Marker
	Service   string
}

// ProcedureDiagnosisRow is a p9 row.
type ProcedureDiagnosisRow struct {
	Procedure      string
	DiagnosisGroup string
	Service        string
}

// MarkerDiagnosisRow is a p9a row. DiagnosisPrefix is matched as a prefix of
// the primary diagnosis.
type MarkerDiagnosisRow struct {
	DiagnosisPrefix string
	Marker          *model.Marker
	Service         string
}

// LevelTable maps a service code to its level per age category name.
type LevelTable map[string]map[string]*int

// Lookup returns the level of service for the given age category.
func (l LevelTable) Lookup(service string, cat model.AgeCategory) (int, bool) {
	levels, ok := l[service]
	if !ok {
		return 0, false
	}
	lvl := levels[cat.Name]
	if lvl == nil {
		return 0, false
	}
	return *lvl, true
}

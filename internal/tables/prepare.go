package tables

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/normalize"
)

// Prepare normalizes code columns, orders marker rows first and converts
// the raw tables into typed rows. raw is modified in place.
func Prepare(raw RawTables) (*Tables, error) {
	for name := range requiredColumns {
		if _, ok := raw[name]; !ok {
			return nil, fmt.Errorf("table %s: not loaded", name)
		}
	}

	normalizeCodes(raw)
	for name, rows := range raw {
		sortMarkerRowsFirst(name, rows)
	}

	levels, err := parseLevels(raw[Levels])
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", Levels, err)
	}

	t := &Tables{
		Levels:  levels,
		Markers: markerRows(raw[MarkerServices]),

		DonorComa:             codeSet(raw[DonorComa], colDiagnosis),
		DonorBrainSwelling:    codeSet(raw[DonorBrainSwelling], colDiagnosis),
		DonorSelectedDiseases: codeSet(raw[DonorSelectedDiseases], colDiagnosis),

		Newborn:               newbornRows(raw[Newborn]),
		SignificantProcedures: codeSet(raw[SignificantProcedures], colProcedure),
		SevereNewbornProblems: codeSet(raw[SevereNewbornProblems], colDiagnosis),

		Trauma: ByAge[TraumaRow]{
			Children: traumaRows(raw[TraumaChildren]),
			Adults:   traumaRows(raw[TraumaAdults]),
		},
		ProcedurePairs: ByAge[ServiceCodeRow]{
			Children: serviceCodeRows(raw[ProcedurePairChildren], colPrimaryProcedure),
			Adults:   serviceCodeRows(raw[ProcedurePairAdults], colPrimaryProcedure),
		},
		ProcedureGroups: ByAge[GroupMemberRow]{
			Children: groupMemberRows(raw[ProcedureGroupChildren], colService, colProcedure),
			Adults:   groupMemberRows(raw[ProcedureGroupAdults], colService, colProcedure),
		},
		MarkerProcedure: ByAge[MarkerProcedureRow]{
			Children: markerProcedureRows(raw[MarkerProcedureChildren]),
			Adults:   markerProcedureRows(raw[MarkerProcedureAdults]),
		},
		ProcedureDiagnosis: ByAge[ProcedureDiagnosisRow]{
			Children: procedureDiagnosisRows(raw[ProcedureDiagnosisChildren]),
			Adults:   procedureDiagnosisRows(raw[ProcedureDiagnosisAdults]),
		},
		DiagnosisGroups: groupMemberRows(raw[DiagnosisGroups], colDiagnosisGroup, colPrimaryDiagnosis),
		MarkerDiagnosis: markerDiagnosisRows(raw[MarkerDiagnosisAdults]),

		DiagnosisPairPrimary: codeSet(raw[DiagnosisPairPrimary], colPrimaryDiagnosis),
		DiagnosisPairs: ByAge[ServiceCodeRow]{
			Children: serviceCodeRows(raw[DiagnosisPairChildren], colSecondaryDiagnosis),
			Adults:   serviceCodeRows(raw[DiagnosisPairAdults], colSecondaryDiagnosis),
		},
		Procedures: ByAge[ServiceCodeRow]{
			Children: serviceCodeRows(raw[ProcedureChildren], colProcedure),
			Adults:   serviceCodeRows(raw[ProcedureAdults], colProcedure),
		},
		Diagnoses: ByAge[ServiceCodeRow]{
			Children: serviceCodeRows(raw[DiagnosisChildren], colDiagnosis),
			Adults:   serviceCodeRows(raw[DiagnosisAdults], colDiagnosis),
		},
		stats: collectStats(raw),
	}
	return t, nil
}

func normalizeCodes(raw RawTables) {
	for name, cols := range codeColumns {
		for _, row := range raw[name] {
			for _, col := range cols {
				row[col] = normalize.Code(row[col])
			}
		}
	}
}

// usesMarker reports whether a row depends on a reported marker, either
// through its marker columns or through the criterion allow-list.
func usesMarker(table string, row RawRow) bool {
	if row[colMarkerCode] != "" {
		return true
	}
	for _, cond := range markerCriteria[table] {
		if isSubset(cond, row) {
			return true
		}
	}
	return false
}

func isSubset(sub map[string]string, row RawRow) bool {
	for k, v := range sub {
		got, ok := row[k]
		if !ok || got != v {
			return false
		}
	}
	return true
}

func sortMarkerRowsFirst(table string, rows []RawRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return usesMarker(table, rows[i]) && !usesMarker(table, rows[j])
	})
}

func rowMarker(row RawRow) *model.Marker {
	if row[colMarkerCode] == "" {
		return nil
	}
	return &model.Marker{Code: row[colMarkerCode], Value: row[colMarkerValue]}
}

func parseLevels(rows []RawRow) (LevelTable, error) {
	levels := make(LevelTable, len(rows))
	for i, row := range rows {
		byCat := make(map[string]*int, len(model.AllAgeCategories))
		for _, cat := range model.AllAgeCategories {
			v := strings.TrimSpace(row[cat.Column])
			if v == "" {
				byCat[cat.Name] = nil
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s %q: %w", i+2, cat.Column, v, err)
			}
			byCat[cat.Name] = &n
		}
		levels[row[colService]] = byCat
	}
	return levels, nil
}

func codeSet(rows []RawRow, col string) CodeSet {
	set := make(CodeSet, len(rows))
	for _, row := range rows {
		set[row[col]] = struct{}{}
	}
	return set
}

func markerRows(rows []RawRow) []MarkerRow {
	out := make([]MarkerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MarkerRow{Marker: rowMarker(row), Service: row[colService]})
	}
	return out
}

func newbornRows(rows []RawRow) []NewbornRow {
	out := make([]NewbornRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewbornRow{
			DRG:           row[colDRG],
			Criterion:     ParseNewbornCriterion(row[colCriterion]),
			CriterionText: row[colCriterion],
			Service:       row[colService],
		})
	}
	return out
}

func traumaRows(rows []RawRow) []TraumaRow {
	out := make([]TraumaRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, TraumaRow{
			DRG:           row[colDRG],
			Criterion:     ParseTraumaCriterion(row[colCriterion]),
			CriterionText: row[colCriterion],
			Service:       row[colService],
		})
	}
	return out
}

func serviceCodeRows(rows []RawRow, codeCol string) []ServiceCodeRow {
	out := make([]ServiceCodeRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ServiceCodeRow{Code: row[codeCol], Service: row[colService]})
	}
	return out
}

func groupMemberRows(rows []RawRow, groupCol, codeCol string) []GroupMemberRow {
	out := make([]GroupMemberRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, GroupMemberRow{Group: row[groupCol], Code: row[codeCol]})
	}
	return out
}

func markerProcedureRows(rows []RawRow) []MarkerProcedureRow {
	out := make([]MarkerProcedureRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MarkerProcedureRow{
			Procedure: row[colProcedure],
			Marker:    rowMarker(row),
			Service:   row[colService],
		})
	}
	return out
}

func procedureDiagnosisRows(rows []RawRow) []ProcedureDiagnosisRow {
	out := make([]ProcedureDiagnosisRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProcedureDiagnosisRow{
			Procedure:      row[colPrimaryProcedure],
			DiagnosisGroup: row[colDiagnosisGroup],
			Service:        row[colService],
		})
	}
	return out
}

func markerDiagnosisRows(rows []RawRow) []MarkerDiagnosisRow {
	out := make([]MarkerDiagnosisRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MarkerDiagnosisRow{
			DiagnosisPrefix: row[colPrimaryDiagnosis],
			Marker:          rowMarker(row),
			Service:         row[colService],
		})
	}
	return out
}

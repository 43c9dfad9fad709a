package annex

import "github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"

// procedureDiagnosis evaluates annex 9: a primary procedure with a primary
// diagnosis from the row's diagnosis group.
func (e *Evaluator) procedureDiagnosis(c *model.Case, allowAnyPrimary bool) []string {
	child, known := c.Child()
	if len(c.Procedures) == 0 || c.Procedures[0] == "" || len(c.Diagnoses) == 0 || !known {
		return nil
	}
	rows := e.t.ProcedureDiagnosis.For(child)
	primaryDiagnosis := c.Diagnoses[0]

	return explore(c, allowAnyPrimary, func(c *model.Case) []string {
		primary := c.Procedures[0]
		var codes []string
		for _, r := range rows {
			if r.Procedure == primary && e.diagnosisGroups[r.DiagnosisGroup].Has(primaryDiagnosis) {
				codes = append(codes, r.Service)
			}
		}
		return codes
	})
}

// diagnosisPairs evaluates annex 10: a primary diagnosis from the annex list
// together with a secondary diagnosis of the row.
func (e *Evaluator) diagnosisPairs(c *model.Case) []string {
	child, known := c.Child()
	if len(c.Diagnoses) < 2 || !known {
		return nil
	}
	if !e.t.DiagnosisPairPrimary.Has(c.Diagnoses[0]) {
		return nil
	}
	secondary := c.SecondaryDiagnoses()
	var codes []string
	for _, r := range e.t.DiagnosisPairs.For(child) {
		for _, d := range secondary {
			if d == r.Code {
				codes = append(codes, r.Service)
				break
			}
		}
	}
	return codes
}

// singleDiagnosis evaluates annexes 14 and 15: the primary diagnosis alone.
func (e *Evaluator) singleDiagnosis(c *model.Case) []string {
	child, known := c.Child()
	primary, err := c.PrimaryDiagnosis()
	if err != nil || !known {
		return nil
	}
	var codes []string
	for _, r := range e.t.Diagnoses.For(child) {
		if r.Code == primary {
			codes = append(codes, r.Service)
		}
	}
	return codes
}

package model

import "errors"

// ChildMaxAge is the highest age (in years) treated as a child.
const ChildMaxAge = 18

var (
	ErrNoProcedures = errors.New("case has no procedures")
	ErrNoDiagnoses  = errors.New("case has no diagnoses")
)

// Case is one validated hospitalization record. Code lists are normalized and
// keep their input order; the first element of Diagnoses and Procedures is the
// primary one. An empty string at Procedures[0] means no primary procedure was
// reported.
//
// A Case is treated as immutable once built. Derived cases (see
// WithPrimaryProcedure) copy their slices.
type Case struct {
	ID               string
	Age              *int
	Weight           *float64
	VentilationHours *int
	AdmissionType    *int
	Diagnoses        []string
	Procedures       []string
	Markers          []Marker
	DRG              *string
}

// Child reports whether the patient is a child. known is false when age is missing.
func (c *Case) Child() (child, known bool) {
	if c.Age == nil {
		return false, false
	}
	return *c.Age <= ChildMaxAge, true
}

// AgeCategory returns the age bucket of the patient. ok is false when age is missing.
func (c *Case) AgeCategory() (AgeCategory, bool) {
	if c.Age == nil {
		return AgeCategory{}, false
	}
	return AgeCategoryFor(*c.Age)
}

// PrimaryProcedure returns Procedures[0].
func (c *Case) PrimaryProcedure() (string, error) {
	if len(c.Procedures) == 0 {
		return "", ErrNoProcedures
	}
	return c.Procedures[0], nil
}

// SecondaryProcedures returns every procedure after the primary one.
func (c *Case) SecondaryProcedures() []string {
	if len(c.Procedures) < 2 {
		return nil
	}
	return c.Procedures[1:]
}

// PrimaryDiagnosis returns Diagnoses[0].
func (c *Case) PrimaryDiagnosis() (string, error) {
	if len(c.Diagnoses) == 0 {
		return "", ErrNoDiagnoses
	}
	return c.Diagnoses[0], nil
}

// SecondaryDiagnoses returns every diagnosis after the primary one.
func (c *Case) SecondaryDiagnoses() []string {
	if len(c.Diagnoses) < 2 {
		return nil
	}
	return c.Diagnoses[1:]
}

func (c *Case) HasProcedure(code string) bool {
	return contains(c.Procedures, code)
}

func (c *Case) HasDiagnosis(code string) bool {
	return contains(c.Diagnoses, code)
}

func (c *Case) HasMarker(m Marker) bool {
	return ContainsMarker(c.Markers, m)
}

// WithPrimaryProcedure returns a new case whose procedure list is
// [Procedures[i]] + Procedures[:i] + Procedures[i+1:]. The receiver is not
// modified. It panics if i is out of range.
func (c *Case) WithPrimaryProcedure(i int) *Case {
	procs := make([]string, 0, len(c.Procedures))
	procs = append(procs, c.Procedures[i])
	procs = append(procs, c.Procedures[:i]...)
	procs = append(procs, c.Procedures[i+1:]...)

	derived := *c
	derived.Procedures = procs
	return &derived
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

package annex

import "github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"

// procedurePairs evaluates annexes 7 and 8: a primary procedure together with
// at least one secondary procedure from the group named by the row service.
func (e *Evaluator) procedurePairs(c *model.Case, allowAnyPrimary bool) []string {
	child, known := c.Child()
	if len(c.Procedures) < 2 || c.Procedures[0] == "" || !known {
		return nil
	}
	rows := e.t.ProcedurePairs.For(child)
	groups := e.procedureGroups(child)

	return explore(c, allowAnyPrimary, func(c *model.Case) []string {
		primary := c.Procedures[0]
		var codes []string
		for _, r := range rows {
			if r.Code == primary && groups[r.Service].HasAny(c.SecondaryProcedures()) {
				codes = append(codes, r.Service)
			}
		}
		return codes
	})
}

// singleProcedure evaluates annexes 12 and 13: the primary procedure alone.
func (e *Evaluator) singleProcedure(c *model.Case, allowAnyPrimary bool) []string {
	child, known := c.Child()
	if len(c.Procedures) == 0 || !known {
		return nil
	}
	rows := e.t.Procedures.For(child)

	return explore(c, allowAnyPrimary, func(c *model.Case) []string {
		primary := c.Procedures[0]
		var codes []string
		for _, r := range rows {
			if r.Code == primary {
				codes = append(codes, r.Service)
			}
		}
		return codes
	})
}

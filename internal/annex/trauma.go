package annex

import (
	"strings"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/tables"
)

var markerNotPolytrauma = model.Marker{Code: "mOSN", Value: "nopol"}

// craniocerebralTrauma holds when any diagnosis starts with s02 to s09.
func craniocerebralTrauma(c *model.Case) bool {
	for _, d := range c.Diagnoses {
		if len(d) < 3 || !strings.HasPrefix(d, "s0") {
			continue
		}
		if d[2] >= '2' && d[2] <= '9' {
			return true
		}
	}
	return false
}

// trauma evaluates annex 6: the DRG group of the case together with the
// craniocerebral trauma diagnosis group or the polytrauma marker.
func (e *Evaluator) trauma(c *model.Case) []string {
	child, known := c.Child()
	if len(c.Diagnoses) == 0 || c.DRG == nil || !known {
		return nil
	}
	var codes []string
	for _, r := range e.t.Trauma.For(child) {
		if strings.HasPrefix(*c.DRG, r.DRG) && traumaCriterion(r.Criterion, c) {
			codes = append(codes, r.Service)
		}
	}
	return codes
}

func traumaCriterion(crit tables.TraumaCriterion, c *model.Case) bool {
	switch crit {
	case tables.TraumaCraniocerebral:
		return craniocerebralTrauma(c)
	case tables.TraumaNoCraniocerebral:
		return !craniocerebralTrauma(c)
	case tables.TraumaNotPolytrauma:
		return c.HasMarker(markerNotPolytrauma)
	}
	return false
}

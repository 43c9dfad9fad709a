package annex

import (
	"strconv"
	"strings"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/tables"
)

// Codes referenced by the annex 5 criteria.
const (
	procHighFrequencyVentilation = "8p107"
	procNitricOxideInhalation    = "8p133"
	procTherapeuticHypothermia   = "8q902"
	procExchangeTransfusion      = "8r2637"
	procAcuteDelivery            = "93083"
	procNoninvasiveVentilation   = "8p1007"
	diagPalliativeCare           = "z515"

	markerGestationalAge = "mGVK"
)

var markerTransportImpossible = model.Marker{Code: "mOSN", Value: "novor"}

// Thresholds of the annex 5 criteria.
const (
	admissionTypeMin        = 3
	admissionTypeMax        = 6
	shortVentilationHours   = 96 // strictly below
	longVentilationHours    = 95 // strictly above
	viabilityWeightGrams    = 500
	gestationalAgeMin       = 1
	gestationalAgeMax       = 46
	severeProblemsThreshold = 2
)

// newborn evaluates annex 5: the DRG group of the case, optionally with a
// supplementary criterion. It applies to admission types 3 to 6 only.
func (e *Evaluator) newborn(c *model.Case) []string {
	if c.AdmissionType == nil || *c.AdmissionType < admissionTypeMin || *c.AdmissionType > admissionTypeMax || c.DRG == nil {
		return nil
	}
	var codes []string
	for _, r := range e.t.Newborn {
		if strings.HasPrefix(*c.DRG, r.DRG) && e.newbornCriterion(r.Criterion, c) {
			codes = append(codes, r.Service)
		}
	}
	return codes
}

func (e *Evaluator) newbornCriterion(crit tables.NewbornCriterion, c *model.Case) bool {
	switch crit {
	case tables.NewbornNone:
		return true
	case tables.NewbornUnconventionalVentilation:
		return c.HasProcedure(procHighFrequencyVentilation) || c.HasProcedure(procNitricOxideInhalation)
	case tables.NewbornControlledHypothermia:
		return c.HasProcedure(procTherapeuticHypothermia)
	case tables.NewbornPalliativeCare:
		return c.HasDiagnosis(diagPalliativeCare)
	case tables.NewbornExchangeTransfusion:
		return c.HasProcedure(procExchangeTransfusion)
	case tables.NewbornAcuteDelivery:
		return c.HasProcedure(procAcuteDelivery)
	case tables.NewbornTransportImpossible:
		return c.HasMarker(markerTransportImpossible)
	case tables.NewbornNoninvasiveUnder96h:
		return c.HasProcedure(procNoninvasiveVentilation) &&
			c.VentilationHours != nil && *c.VentilationHours < shortVentilationHours
	case tables.NewbornBelowViability:
		return belowViability(c)
	case tables.NewbornSignificantOP:
		return e.significantOP(c)
	case tables.NewbornNoOPLongVentilation:
		return !e.significantOP(c) && longVentilation(c) && e.multipleSevereProblems(c)
	case tables.NewbornNoOPNoLongVentilation:
		// Unknown ventilation hours satisfy only the second alternative.
		shortOrNone := c.VentilationHours != nil && !longVentilation(c)
		return !e.significantOP(c) && (shortOrNone || !e.multipleSevereProblems(c))
	}
	return false
}

// significantOP is the grouper's global function "significant operative
// procedure".
func (e *Evaluator) significantOP(c *model.Case) bool {
	return e.t.SignificantProcedures.HasAny(c.Procedures)
}

// multipleSevereProblems is the grouper's global function "multiple severe
// problems of newborns". Repeated diagnoses count repeatedly.
func (e *Evaluator) multipleSevereProblems(c *model.Case) bool {
	return e.t.SevereNewbornProblems.Count(c.Diagnoses) >= severeProblemsThreshold
}

func longVentilation(c *model.Case) bool {
	return c.VentilationHours != nil && *c.VentilationHours > longVentilationHours
}

// belowViability holds for weight under 500 g or a gestational age marker
// below 24 weeks. Marker values that are not integers never match.
func belowViability(c *model.Case) bool {
	if c.Weight != nil && *c.Weight < viabilityWeightGrams {
		return true
	}
	for _, m := range c.Markers {
		if m.Code != markerGestationalAge {
			continue
		}
		v, err := strconv.Atoi(m.Value)
		if err == nil && v >= gestationalAgeMin && v <= gestationalAgeMax {
			return true
		}
	}
	return false
}

package casebuilder

import (
	"strconv"
	"strings"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

// Encode renders c as a raw record that Build accepts. Procedure locations
// and dates are not kept on a Case and are written empty.
func Encode(c *model.Case, d config.Delimiters) map[string]string {
	procs := make([]string, len(c.Procedures))
	for i, p := range c.Procedures {
		if p == "" {
			continue
		}
		procs[i] = p + d.SubField + d.SubField
	}
	markers := make([]string, len(c.Markers))
	for i, m := range c.Markers {
		markers[i] = m.Code + d.SubField + m.Value
	}

	raw := map[string]string{
		model.FieldID:               c.ID,
		model.FieldAge:              formatInt(c.Age),
		model.FieldVentilationHours: formatInt(c.VentilationHours),
		model.FieldAdmissionType:    formatInt(c.AdmissionType),
		model.FieldDiagnoses:        strings.Join(c.Diagnoses, d.List),
		model.FieldProcedures:       strings.Join(procs, d.List),
		model.FieldMarkers:          strings.Join(markers, d.List),
		model.FieldWeight:           "",
		model.FieldDRG:              "",
	}
	if c.Weight != nil {
		raw[model.FieldWeight] = strconv.FormatFloat(*c.Weight, 'g', -1, 64)
	}
	if c.DRG != nil {
		raw[model.FieldDRG] = *c.DRG
	}
	return raw
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

package model

// InputRow is one raw case record as stored in a Parquet input file. All
// fields are strings so validation sees the same values as for CSV input.
type InputRow struct {
	ID               string `parquet:"id"`
	Age              string `parquet:"vek"`
	Weight           string `parquet:"hmotnost"`
	VentilationHours string `parquet:"umela_plucna_ventilacia"`
	Diagnoses        string `parquet:"diagnozy"`
	Procedures       string `parquet:"vykony"`
	Markers          string `parquet:"markery"`
	DRG              string `parquet:"drg"`
	AdmissionType    string `parquet:"druh_prijatia"`
}

// Raw returns the row keyed by input column name.
func (r *InputRow) Raw() map[string]string {
	return map[string]string{
		FieldID:               r.ID,
		FieldAge:              r.Age,
		FieldWeight:           r.Weight,
		FieldVentilationHours: r.VentilationHours,
		FieldDiagnoses:        r.Diagnoses,
		FieldProcedures:       r.Procedures,
		FieldMarkers:          r.Markers,
		FieldDRG:              r.DRG,
		FieldAdmissionType:    r.AdmissionType,
	}
}

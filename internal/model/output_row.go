package model

// OutputRow is one classified record as written to the output file. Input
// fields are carried through verbatim.
type OutputRow struct {
	ID               string `parquet:"id"`
	Age              string `parquet:"vek"`
	Weight           string `parquet:"hmotnost"`
	VentilationHours string `parquet:"umela_plucna_ventilacia"`
	Diagnoses        string `parquet:"diagnozy"`
	Procedures       string `parquet:"vykony"`
	Markers          string `parquet:"markery"`
	DRG              string `parquet:"drg"`
	AdmissionType    string `parquet:"druh_prijatia"`

	Services string `parquet:"ms"`
	Levels   string `parquet:"urovne_ms"`
}

// NewOutputRow copies the input fields of raw into a row.
func NewOutputRow(raw map[string]string, services, levels string) OutputRow {
	return OutputRow{
		ID:               raw[FieldID],
		Age:              raw[FieldAge],
		Weight:           raw[FieldWeight],
		VentilationHours: raw[FieldVentilationHours],
		Diagnoses:        raw[FieldDiagnoses],
		Procedures:       raw[FieldProcedures],
		Markers:          raw[FieldMarkers],
		DRG:              raw[FieldDRG],
		AdmissionType:    raw[FieldAdmissionType],
		Services:         services,
		Levels:           levels,
	}
}

// Values returns the row values in the same order as OutputColumns().
func (r *OutputRow) Values() []string {
	return []string{
		r.ID,
		r.Age,
		r.Weight,
		r.VentilationHours,
		r.Diagnoses,
		r.Procedures,
		r.Markers,
		r.DRG,
		r.AdmissionType,
		r.Services,
		r.Levels,
	}
}

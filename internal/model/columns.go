package model

// Input field names of a raw case record, in file order.
const (
	FieldID               = "id"
	FieldAge              = "vek"
	FieldWeight           = "hmotnost"
	FieldVentilationHours = "umela_plucna_ventilacia"
	FieldDiagnoses        = "diagnozy"
	FieldProcedures       = "vykony"
	FieldMarkers          = "markery"
	FieldDRG              = "drg"
	FieldAdmissionType    = "druh_prijatia"

	FieldServices = "ms"
	FieldLevels   = "urovne_ms"
)

// ErrorValue is written to both output columns when a case fails strict validation.
const ErrorValue = "ERROR"

// InputColumns returns the ordered column names of the input file.
func InputColumns() []string {
	return []string{
		FieldID,
		FieldAge,
		FieldWeight,
		FieldVentilationHours,
		FieldDiagnoses,
		FieldProcedures,
		FieldMarkers,
		FieldDRG,
		FieldAdmissionType,
	}
}

// OutputColumns returns the input columns followed by the two result columns.
func OutputColumns() []string {
	return append(InputColumns(), FieldServices, FieldLevels)
}

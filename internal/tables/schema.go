package tables

import (
	"sort"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

// Annex table names. Each is loaded from "<name>.csv".
const (
	Levels                     = "p2"
	Newborn                    = "p5_NOV"
	SignificantProcedures      = "p5_signifikantne_OP"
	SevereNewbornProblems      = "p5_tazke_problemy_u_novorodencov"
	TraumaChildren             = "p6_DRGD_deti"
	TraumaAdults               = "p6_DRGD_dospeli"
	ProcedurePairChildren      = "p7_VV_deti_hv"
	ProcedureGroupChildren     = "p7_VV_deti_vv"
	MarkerProcedureChildren    = "p7a_MV_deti"
	ProcedurePairAdults        = "p8_VV_dospeli_hv"
	ProcedureGroupAdults       = "p8_VV_dospeli_vv"
	MarkerProcedureAdults      = "p8a_MV_dospeli"
	ProcedureDiagnosisChildren = "p9_VD_deti"
	ProcedureDiagnosisAdults   = "p9_VD_dospeli"
	DiagnosisGroups            = "p9_VD_diagnozy"
	MarkerDiagnosisAdults      = "p9a_MD_dospeli"
	DiagnosisPairChildren      = "p10_DD_deti"
	DiagnosisPairPrimary       = "p10_DD_diagnozy"
	DiagnosisPairAdults        = "p10_DD_dospeli"
	ProcedureChildren          = "p12_V_deti"
	ProcedureAdults            = "p13_V_dospeli"
	DiagnosisChildren          = "p14_D_deti"
	DiagnosisAdults            = "p15_D_dospeli"
	DonorComa                  = "p16_koma"
	DonorBrainSwelling         = "p16_opuch_mozgu"
	DonorSelectedDiseases      = "p16_vybrane_ochorenia"
	MarkerServices             = "p17_M"
)

// Column names shared across annex tables.
const (
	colService            = "kod_ms"
	colDRG                = "drg"
	colCriterion          = "doplnujuce_kriterium"
	colProcedure          = "kod_vykonu"
	colPrimaryProcedure   = "kod_hlavneho_vykonu"
	colDiagnosis          = "kod_diagnozy"
	colPrimaryDiagnosis   = "kod_hlavnej_diagnozy"
	colSecondaryDiagnosis = "kod_vedlajsej_diagnozy"
	colDiagnosisGroup     = "skupina_diagnoz"
	colMarkerCode         = "kod_markera"
	colMarkerValue        = "hodnota_markera"
)

// requiredColumns lists every table the evaluator needs and the columns it
// reads from it. Extra columns in the files are ignored.
var requiredColumns = map[string][]string{
	Levels:                     append([]string{colService}, model.AgeCategoryColumns()...),
	Newborn:                    {colDRG, colCriterion, colService},
	SignificantProcedures:      {colProcedure},
	SevereNewbornProblems:      {colDiagnosis},
	TraumaChildren:             {colDRG, colCriterion, colService},
	TraumaAdults:               {colDRG, colCriterion, colService},
	ProcedurePairChildren:      {colPrimaryProcedure, colService},
	ProcedureGroupChildren:     {colService, colProcedure},
	MarkerProcedureChildren:    {colProcedure, colMarkerCode, colMarkerValue, colService},
	ProcedurePairAdults:        {colPrimaryProcedure, colService},
	ProcedureGroupAdults:       {colService, colProcedure},
	MarkerProcedureAdults:      {colProcedure, colMarkerCode, colMarkerValue, colService},
	ProcedureDiagnosisChildren: {colPrimaryProcedure, colDiagnosisGroup, colService},
	ProcedureDiagnosisAdults:   {colPrimaryProcedure, colDiagnosisGroup, colService},
	DiagnosisGroups:            {colDiagnosisGroup, colPrimaryDiagnosis},
	MarkerDiagnosisAdults:      {colPrimaryDiagnosis, colMarkerCode, colMarkerValue, colService},
	DiagnosisPairChildren:      {colSecondaryDiagnosis, colService},
	DiagnosisPairPrimary:       {colPrimaryDiagnosis},
	DiagnosisPairAdults:        {colSecondaryDiagnosis, colService},
	ProcedureChildren:          {colProcedure, colService},
	ProcedureAdults:            {colProcedure, colService},
	DiagnosisChildren:          {colDiagnosis, colService},
	DiagnosisAdults:            {colDiagnosis, colService},
	DonorComa:                  {colDiagnosis},
	DonorBrainSwelling:         {colDiagnosis},
	DonorSelectedDiseases:      {colDiagnosis},
	MarkerServices:             {colMarkerCode, colMarkerValue, colService},
}

// codeColumns lists the columns holding diagnosis, procedure or DRG codes.
// They are normalized at load time so they compare equal to case codes.
var codeColumns = map[string][]string{
	Newborn:                    {colDRG},
	SignificantProcedures:      {colProcedure},
	SevereNewbornProblems:      {colDiagnosis},
	TraumaChildren:             {colDRG},
	TraumaAdults:               {colDRG},
	ProcedurePairChildren:      {colPrimaryProcedure},
	ProcedureGroupChildren:     {colProcedure},
	MarkerProcedureChildren:    {colProcedure},
	ProcedurePairAdults:        {colPrimaryProcedure},
	ProcedureGroupAdults:       {colProcedure},
	MarkerProcedureAdults:      {colProcedure},
	ProcedureDiagnosisChildren: {colPrimaryProcedure},
	ProcedureDiagnosisAdults:   {colPrimaryProcedure},
	DiagnosisGroups:            {colPrimaryDiagnosis},
	MarkerDiagnosisAdults:      {colPrimaryDiagnosis},
	DiagnosisPairChildren:      {colSecondaryDiagnosis},
	DiagnosisPairPrimary:       {colPrimaryDiagnosis},
	DiagnosisPairAdults:        {colSecondaryDiagnosis},
	ProcedureChildren:          {colProcedure},
	ProcedureAdults:            {colProcedure},
	DiagnosisChildren:          {colDiagnosis},
	DiagnosisAdults:            {colDiagnosis},
	DonorComa:                  {colDiagnosis},
	DonorBrainSwelling:         {colDiagnosis},
	DonorSelectedDiseases:      {colDiagnosis},
}

// markerCriteria is the allow-list of rows that depend on a marker although
// their table expresses it only as free-text criterion rather than marker
// columns. It is regulation-specific debt covering annexes 5 and 6 only and
// must not be extended to other tables.
var markerCriteria = map[string][]map[string]string{
	Newborn: {
		{colCriterion: TextTransportImpossible},
		{colCriterion: TextBelowViability},
	},
	TraumaChildren: {{colCriterion: TextNotPolytrauma}},
	TraumaAdults:   {{colCriterion: TextNotPolytrauma}},
}

// TableNames returns the names of all required tables in sorted order.
func TableNames() []string {
	names := make([]string, 0, len(requiredColumns))
	for name := range requiredColumns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

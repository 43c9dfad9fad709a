package model

// AgeCategory is the age bucket used to look up service levels.
type AgeCategory struct {
	Name   string // e.g. "deti_7"
	Column string // level column in the p2 table, e.g. "uroven_ms_deti_7"
	MinAge int    // inclusive lower bound
}

// AllAgeCategories lists the age buckets in ascending order of MinAge.
var AllAgeCategories = []AgeCategory{
	{Name: "deti_0", Column: "uroven_ms_deti_0", MinAge: 0},
	{Name: "deti_1", Column: "uroven_ms_deti_1", MinAge: 1},
	{Name: "deti_7", Column: "uroven_ms_deti_7", MinAge: 7},
	{Name: "deti_16", Column: "uroven_ms_deti_16", MinAge: 16},
	{Name: "dospeli", Column: "uroven_ms_dospeli", MinAge: 19},
}

// AgeCategoryColumns returns the level column names for all age categories.
func AgeCategoryColumns() []string {
	cols := make([]string, len(AllAgeCategories))
	for i, ac := range AllAgeCategories {
		cols[i] = ac.Column
	}
	return cols
}

// AgeCategoryFor returns the bucket an age in years falls into.
// Negative ages have no bucket.
func AgeCategoryFor(age int) (AgeCategory, bool) {
	if age < 0 {
		return AgeCategory{}, false
	}
	for i := len(AllAgeCategories) - 1; i >= 0; i-- {
		if age >= AllAgeCategories[i].MinAge {
			return AllAgeCategories[i], true
		}
	}
	return AgeCategory{}, false
}

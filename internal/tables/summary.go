package tables

// TableStats describes one loaded annex table.
type TableStats struct {
	Name       string
	Rows       int
	MarkerRows int // rows that depend on a reported marker
	// UnknownCriteria counts rows whose criterion text is not recognized.
	// Such rows never match.
	UnknownCriteria int
}

// UnknownCriterion is a p5_NOV or p6_DRGD row with unrecognized criterion text.
type UnknownCriterion struct {
	Table   string
	Text    string
	Service string
}

func collectStats(raw RawTables) []TableStats {
	stats := make([]TableStats, 0, len(requiredColumns))
	for _, name := range TableNames() {
		s := TableStats{Name: name, Rows: len(raw[name])}
		for _, row := range raw[name] {
			if usesMarker(name, row) {
				s.MarkerRows++
			}
			if unknownCriterion(name, row) {
				s.UnknownCriteria++
			}
		}
		stats = append(stats, s)
	}
	return stats
}

// Summary returns per-table row counts in table name order.
func (t *Tables) Summary() []TableStats {
	out := make([]TableStats, len(t.stats))
	copy(out, t.stats)
	return out
}

// TotalRows returns the number of rows across all tables.
func (t *Tables) TotalRows() int {
	n := 0
	for _, s := range t.stats {
		n += s.Rows
	}
	return n
}

// SHA256 identifies the table files Load read. It is empty for tables built
// with Prepare directly.
func (t *Tables) SHA256() string {
	return t.sha256
}

func unknownCriterion(table string, row RawRow) bool {
	switch table {
	case Newborn:
		return ParseNewbornCriterion(row[colCriterion]) == NewbornUnknown
	case TraumaChildren, TraumaAdults:
		return ParseTraumaCriterion(row[colCriterion]) == TraumaUnknown
	}
	return false
}

// UnknownCriteria lists the rows whose criterion text was not recognized,
// in table order.
func (t *Tables) UnknownCriteria() []UnknownCriterion {
	var out []UnknownCriterion
	for _, r := range t.Newborn {
		if r.Criterion == NewbornUnknown {
			out = append(out, UnknownCriterion{Table: Newborn, Text: r.CriterionText, Service: r.Service})
		}
	}
	for _, tr := range []struct {
		name string
		rows []TraumaRow
	}{{TraumaChildren, t.Trauma.Children}, {TraumaAdults, t.Trauma.Adults}} {
		for _, r := range tr.rows {
			if r.Criterion == TraumaUnknown {
				out = append(out, UnknownCriterion{Table: tr.name, Text: r.CriterionText, Service: r.Service})
			}
		}
	}
	return out
}

// TotalUnknownCriteria returns the number of rows with unrecognized criteria.
func (t *Tables) TotalUnknownCriteria() int {
	n := 0
	for _, s := range t.stats {
		n += s.UnknownCriteria
	}
	return n
}

package tables

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

const testdataDir = "../../testdata/prilohy"

func loadTestTables(t *testing.T) *Tables {
	t.Helper()
	tb, err := Load(testdataDir)
	if err != nil {
		t.Fatalf("Load(%s): %v", testdataDir, err)
	}
	return tb
}

// headerOnlyFS returns a filesystem with every required table present but empty.
func headerOnlyFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, cols := range requiredColumns {
		fsys[name+".csv"] = &fstest.MapFile{Data: []byte(strings.Join(cols, ";") + "\n")}
	}
	return fsys
}

func TestLoad_Testdata(t *testing.T) {
	tb := loadTestTables(t)

	if len(tb.Markers) != 1 || tb.Markers[0].Marker == nil {
		t.Fatalf("p17 rows = %+v", tb.Markers)
	}
	// p17_M.csv starts with a byte order mark.
	if got := *tb.Markers[0].Marker; got != (model.Marker{Code: "mOSN", Value: "anams"}) {
		t.Errorf("p17 marker = %+v", got)
	}
	if !tb.DonorComa.Has("r402") {
		t.Error("p16_koma should contain normalized r402")
	}
	if !tb.SevereNewbornProblems.Has("a010") || !tb.SevereNewbornProblems.Has("a011") {
		t.Error("severe newborn problems not normalized")
	}
	if len(tb.Procedures.Children) == 0 || tb.Procedures.For(true)[5].Code != "163002" {
		t.Errorf("p12 codes = %+v", tb.Procedures.Children)
	}
	if tb.MarkerDiagnosis[0].DiagnosisPrefix != "h90" {
		t.Errorf("p9a prefix = %q", tb.MarkerDiagnosis[0].DiagnosisPrefix)
	}
	if len(tb.SHA256()) != 64 {
		t.Errorf("SHA256 = %q", tb.SHA256())
	}
}

func TestLoad_MarkerRowsFirst(t *testing.T) {
	tb := loadTestTables(t)

	var got []string
	for _, r := range tb.Trauma.Children {
		got = append(got, r.Service)
	}
	want := []string{"S52-64", "S52-01", "S52-02"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("p6 children order = %v, want %v", got, want)
	}

	// Marker criteria move to the front, everything else keeps file order.
	if tb.Newborn[0].Service != "S48-07" || tb.Newborn[1].Service != "S49-07" {
		t.Errorf("p5 head = %s, %s", tb.Newborn[0].Service, tb.Newborn[1].Service)
	}
	if tb.Newborn[2].Service != "S49-03" {
		t.Errorf("p5 first non-marker row = %s, want S49-03", tb.Newborn[2].Service)
	}
}

func TestLoad_Criteria(t *testing.T) {
	tb := loadTestTables(t)

	byService := map[string]NewbornCriterion{}
	for _, r := range tb.Newborn {
		byService[r.Service] = r.Criterion
	}
	tests := map[string]NewbornCriterion{
		"S49-03": NewbornNone,
		"S49-05": NewbornUnconventionalVentilation,
		"S48-07": NewbornTransportImpossible,
		"S49-08": NewbornNoOPNoLongVentilation,
		"S77-01": NewbornUnknown,
	}
	for service, want := range tests {
		if got := byService[service]; got != want {
			t.Errorf("%s criterion = %d, want %d", service, got, want)
		}
	}
	if tb.Trauma.Adults[0].Criterion != TraumaNotPolytrauma {
		t.Errorf("p6 adults first criterion = %d", tb.Trauma.Adults[0].Criterion)
	}
	if ParseTraumaCriterion("") != TraumaUnknown {
		t.Error("empty trauma criterion should be unknown")
	}
}

func TestLevels_Lookup(t *testing.T) {
	tb := loadTestTables(t)

	deti16, _ := model.AgeCategoryFor(16)
	dospeli, _ := model.AgeCategoryFor(45)

	if lvl, ok := tb.Levels.Lookup("S17-22", deti16); !ok || lvl != 3 {
		t.Errorf("S17-22/deti_16 = %d, %v", lvl, ok)
	}
	if _, ok := tb.Levels.Lookup("S52-01", dospeli); ok {
		t.Error("S52-01 has no adult level")
	}
	if _, ok := tb.Levels.Lookup("S00-00", dospeli); ok {
		t.Error("unknown service should have no level")
	}
}

func TestLoadRaw_MissingFile(t *testing.T) {
	fsys := headerOnlyFS()
	delete(fsys, MarkerServices+".csv")

	_, err := LoadRaw(fsys)
	if err == nil {
		t.Fatal("expected error for missing table")
	}
	if !strings.Contains(err.Error(), MarkerServices) {
		t.Errorf("error should name the table: %v", err)
	}
}

func TestLoadRaw_MissingColumn(t *testing.T) {
	fsys := headerOnlyFS()
	fsys[Newborn+".csv"] = &fstest.MapFile{Data: []byte("drg;kod_ms\nP;S49-03\n")}

	_, err := LoadRaw(fsys)
	if err == nil || !strings.Contains(err.Error(), colCriterion) {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestPrepare_BadLevel(t *testing.T) {
	fsys := headerOnlyFS()
	fsys[Levels+".csv"] = &fstest.MapFile{Data: []byte(
		"kod_ms;uroven_ms_deti_0;uroven_ms_deti_1;uroven_ms_deti_7;uroven_ms_deti_16;uroven_ms_dospeli\n" +
			"S01-01;1;2;x;;\n")}

	raw, err := LoadRaw(fsys)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if _, err := Prepare(raw); err == nil {
		t.Fatal("expected error for non-integer level")
	}
}

func TestPrepare_EmptyTables(t *testing.T) {
	raw, err := LoadRaw(headerOnlyFS())
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	tb, err := Prepare(raw)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if tb.TotalRows() != 0 {
		t.Errorf("TotalRows = %d", tb.TotalRows())
	}
	if tb.SHA256() != "" {
		t.Errorf("SHA256 = %q for prepared tables", tb.SHA256())
	}
	if len(tb.Summary()) != len(requiredColumns) {
		t.Errorf("Summary has %d tables", len(tb.Summary()))
	}
}

func TestSummary(t *testing.T) {
	tb := loadTestTables(t)

	stats := map[string]TableStats{}
	for _, s := range tb.Summary() {
		stats[s.Name] = s
	}
	if s := stats[Newborn]; s.Rows != 13 || s.MarkerRows != 2 {
		t.Errorf("p5_NOV stats = %+v", s)
	}
	if s := stats[MarkerProcedureChildren]; s.Rows != 2 || s.MarkerRows != 2 {
		t.Errorf("p7a stats = %+v", s)
	}
	if s := stats[ProcedureChildren]; s.MarkerRows != 0 {
		t.Errorf("p12 stats = %+v", s)
	}
	if s := stats[Newborn]; s.UnknownCriteria != 1 {
		t.Errorf("p5_NOV unknown criteria = %d, want 1", s.UnknownCriteria)
	}
	if s := stats[TraumaAdults]; s.UnknownCriteria != 0 {
		t.Errorf("p6_DRGD_dospeli unknown criteria = %d, want 0", s.UnknownCriteria)
	}
}

func TestUnknownCriteria(t *testing.T) {
	raw, err := LoadRaw(os.DirFS(testdataDir))
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	for _, row := range raw[Newborn] {
		if row[colCriterion] == TextControlledHypothermia {
			row[colCriterion] += " "
		}
	}
	raw[TraumaChildren][0][colCriterion] = "diagnozy Kraniocerebralna trauma"

	tb, err := Prepare(raw)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	want := []UnknownCriterion{
		{Table: Newborn, Text: TextControlledHypothermia + " ", Service: "S49-06"},
		{Table: Newborn, Text: "Neznáme kritérium", Service: "S77-01"},
		{Table: TraumaChildren, Text: "diagnozy Kraniocerebralna trauma", Service: "S52-01"},
	}
	got := tb.UnknownCriteria()
	if len(got) != len(want) {
		t.Fatalf("UnknownCriteria = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnknownCriteria[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if n := tb.TotalUnknownCriteria(); n != len(want) {
		t.Errorf("TotalUnknownCriteria = %d, want %d", n, len(want))
	}
}

func TestUsesMarker(t *testing.T) {
	tests := []struct {
		table string
		row   RawRow
		want  bool
	}{
		{MarkerServices, RawRow{colMarkerCode: "mOSN", colMarkerValue: "anams"}, true},
		{Newborn, RawRow{colCriterion: TextBelowViability}, true},
		{Newborn, RawRow{colCriterion: TextPalliativeCare}, false},
		{TraumaAdults, RawRow{colCriterion: TextNotPolytrauma}, true},
		// The allow-list is scoped by table.
		{ProcedureChildren, RawRow{colCriterion: TextNotPolytrauma}, false},
	}
	for _, tt := range tests {
		if got := usesMarker(tt.table, tt.row); got != tt.want {
			t.Errorf("usesMarker(%s, %v) = %v, want %v", tt.table, tt.row, got, tt.want)
		}
	}
}

package casebuilder

import (
	"bytes"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

func strictOpts() Options {
	return Options{Delimiters: config.DefaultDelimiters()}
}

func lenientOpts() Options {
	return Options{Lenient: true, Delimiters: config.DefaultDelimiters()}
}

func validRaw() map[string]string {
	return map[string]string{
		"id":                      "HP1",
		"vek":                     "0",
		"hmotnost":                "999",
		"umela_plucna_ventilacia": "12",
		"diagnozy":                "P07.1~Z51.5",
		"vykony":                  "8p107&Z&20230101~8Q902&L&20230102",
		"markery":                 "mOSN&novor~mGVK&45",
		"drg":                     "P61B",
		"druh_prijatia":           "3",
	}
}

func intPtr(n int) *int { return &n }

func TestBuild_Valid(t *testing.T) {
	c, err := Build(validRaw(), strictOpts(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	drg := "p61b"
	weight := 999.0
	want := &model.Case{
		ID:               "HP1",
		Age:              intPtr(0),
		Weight:           &weight,
		VentilationHours: intPtr(12),
		AdmissionType:    intPtr(3),
		Diagnoses:        []string{"p071", "z515"},
		Procedures:       []string{"8p107", "8q902"},
		Markers:          []model.Marker{{Code: "mOSN", Value: "novor"}, {Code: "mGVK", Value: "45"}},
		DRG:              &drg,
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("Build =\n%+v\nwant\n%+v", c, want)
	}
}

func TestBuild_EmptyLists(t *testing.T) {
	raw := validRaw()
	raw["diagnozy"], raw["vykony"], raw["markery"], raw["drg"] = "", "", "", ""

	c, err := Build(raw, strictOpts(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Diagnoses != nil || c.Procedures != nil || c.Markers != nil || c.DRG != nil {
		t.Errorf("expected empty lists and no DRG, got %+v", c)
	}
}

func TestBuild_NoPrimaryProcedure(t *testing.T) {
	raw := validRaw()
	raw["vykony"] = "~8p107&Z&20230101"

	c, err := Build(raw, strictOpts(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(c.Procedures, []string{"", "8p107"}) {
		t.Errorf("Procedures = %q", c.Procedures)
	}
	if p, _ := c.PrimaryProcedure(); p != "" {
		t.Errorf("PrimaryProcedure = %q", p)
	}
}

func TestBuild_MissingID(t *testing.T) {
	raw := validRaw()
	raw["id"] = ""

	_, err := Build(raw, strictOpts(), zerolog.Nop())
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("id") {
		t.Fatalf("expected id validation error, got %v", err)
	}

	c, err := Build(raw, lenientOpts(), zerolog.Nop())
	if err != nil {
		t.Fatalf("lenient Build: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(c.ID) {
		t.Errorf("generated id = %q", c.ID)
	}
}

func TestBuild_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"age not a number", "vek", "abc"},
		{"age negative", "vek", "-1"},
		{"age empty", "vek", ""},
		{"ventilation decimal", "umela_plucna_ventilacia", "1.5"},
		{"admission zero", "druh_prijatia", "0"},
		{"admission ten", "druh_prijatia", "10"},
		{"admission empty", "druh_prijatia", ""},
		{"newborn weight zero", "hmotnost", "0"},
		{"newborn weight empty", "hmotnost", ""},
		{"newborn weight text", "hmotnost", "heavy"},
		{"procedure two parts", "vykony", "8p107&Z"},
		{"procedure empty code", "vykony", "&Z&20230101"},
		{"procedure empty later entry", "vykony", "8p107&Z&1~~8q902&Z&1"},
		{"marker one part", "markery", "mOSN"},
		{"marker empty value", "markery", "mOSN&"},
		{"marker three parts", "markery", "mOSN&a&b"},
		{"diagnosis empty entry", "diagnozy", "A01~~A02"},
		{"diagnosis only punctuation", "diagnozy", "A01~.-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw[tt.field] = tt.value

			_, err := Build(raw, strictOpts(), zerolog.Nop())
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.CaseID != "HP1" || !verr.Has(tt.field) {
				t.Errorf("error = %v", verr)
			}

			c, err := Build(raw, lenientOpts(), zerolog.Nop())
			if err != nil || c == nil {
				t.Fatalf("lenient Build: %v", err)
			}
		})
	}
}

func TestBuild_LenientDropsInvalidValues(t *testing.T) {
	raw := validRaw()
	raw["vek"] = "x"
	raw["vykony"] = "8p107"
	raw["markery"] = "mOSN"

	var buf bytes.Buffer
	c, err := Build(raw, lenientOpts(), zerolog.New(&buf))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Age != nil || c.Procedures != nil || c.Markers != nil {
		t.Errorf("invalid values should be absent: %+v", c)
	}
	if len(c.Diagnoses) != 2 {
		t.Errorf("valid diagnoses should be kept: %v", c.Diagnoses)
	}
	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"case_id":"HP1"`) || !strings.Contains(out, `"field":"vykony"`) {
		t.Errorf("warnings not logged as expected: %s", out)
	}
}

func TestBuild_Weight(t *testing.T) {
	tests := []struct {
		age, weight string
		want        *float64
	}{
		{"40", "0", nil},
		{"40", "", nil},
		{"40", "abc", nil},
		{"0", "499.5", func() *float64 { w := 499.5; return &w }()},
	}
	for _, tt := range tests {
		raw := validRaw()
		raw["vek"], raw["hmotnost"] = tt.age, tt.weight
		c, err := Build(raw, strictOpts(), zerolog.Nop())
		if err != nil {
			t.Errorf("age %s weight %q: %v", tt.age, tt.weight, err)
			continue
		}
		if !reflect.DeepEqual(c.Weight, tt.want) {
			t.Errorf("age %s weight %q: got %v", tt.age, tt.weight, c.Weight)
		}
	}

	raw := validRaw()
	raw["hmotnost"] = "0"
	c, err := Build(raw, lenientOpts(), zerolog.Nop())
	if err != nil || c.Weight != nil {
		t.Errorf("lenient newborn with zero weight: %v, %v", c, err)
	}
}

func TestBuild_CustomDelimiters(t *testing.T) {
	raw := validRaw()
	raw["diagnozy"] = "A01@A02"
	raw["vykony"] = "8p107#Z#1@8q902#Z#2"
	raw["markery"] = "mOSN#novor"

	opts := Options{Delimiters: config.Delimiters{Column: ";", List: "@", SubField: "#"}}
	c, err := Build(raw, opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Diagnoses) != 2 || len(c.Procedures) != 2 || len(c.Markers) != 1 {
		t.Errorf("unexpected case: %+v", c)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	raws := []map[string]string{validRaw()}

	r := validRaw()
	r["vykony"] = "~8p107&Z&1~5-t06.f0&L&2"
	r["hmotnost"] = "3250.25"
	r["vek"] = "45"
	r["drg"] = ""
	raws = append(raws, r)

	r = validRaw()
	r["vek"] = "7"
	r["hmotnost"] = ""
	r["diagnozy"], r["vykony"], r["markery"] = "", "", ""
	raws = append(raws, r)

	d := config.DefaultDelimiters()
	for i, raw := range raws {
		c, err := Build(raw, strictOpts(), zerolog.Nop())
		if err != nil {
			t.Fatalf("case %d: Build: %v", i, err)
		}
		again, err := Build(Encode(c, d), strictOpts(), zerolog.Nop())
		if err != nil {
			t.Fatalf("case %d: Build(Encode): %v", i, err)
		}
		if !reflect.DeepEqual(c, again) {
			t.Errorf("case %d: round trip mismatch\n%+v\n%+v", i, c, again)
		}
	}
}

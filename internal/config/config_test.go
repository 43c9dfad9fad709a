package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeConfig(t, `
tables_dir: /srv/prilohy
output_format: parquet
log_level: warn
ponechaj_duplicity: true
delimiters:
  list: "@"
`)

	c := Default()
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.TablesDir != "/srv/prilohy" {
		t.Errorf("TablesDir = %q", c.TablesDir)
	}
	if c.OutputFormat != FormatParquet {
		t.Errorf("OutputFormat = %q", c.OutputFormat)
	}
	if c.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", c.LogLevel)
	}
	if c.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want default", c.LogFormat)
	}
	if !c.KeepDuplicates {
		t.Error("KeepDuplicates should be set")
	}
	if c.EvaluateIncomplete {
		t.Error("EvaluateIncomplete should keep its default")
	}
	want := Delimiters{Column: "|", List: "@", SubField: "&"}
	if c.Delimiters != want {
		t.Errorf("Delimiters = %+v, want %+v", c.Delimiters, want)
	}
}

func TestLoadFromFile_SameListAndSubField(t *testing.T) {
	path := writeConfig(t, "delimiters:\n  list: \"&\"\n")

	c := Default()
	err := c.LoadFromFile(path)
	if err == nil {
		t.Fatal("expected error for equal list and sub-field delimiters")
	}
	if !strings.Contains(err.Error(), "must differ") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFromFile_BadDelimiter(t *testing.T) {
	for _, d := range []string{"ab", "x", "7", `"`, ""} {
		path := writeConfig(t, "delimiters:\n  sub_field: '"+strings.ReplaceAll(d, "'", "''")+"'\n")
		c := Default()
		if err := c.LoadFromFile(path); err == nil {
			t.Errorf("delimiter %q: expected error", d)
		}
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := writeConfig(t, "delimiters: [\n")
	c := Default()
	if err := c.LoadFromFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	var c Config
	err := c.LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte("id\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("ok", func(t *testing.T) {
		c := Default()
		c.InputPath = input
		c.TablesDir = dir
		if err := c.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})
	t.Run("missing input", func(t *testing.T) {
		c := Default()
		c.TablesDir = dir
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("tables not a directory", func(t *testing.T) {
		c := Default()
		c.InputPath = input
		c.TablesDir = input
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("unknown format", func(t *testing.T) {
		c := Default()
		c.InputPath = input
		c.TablesDir = dir
		c.OutputFormat = "xlsx"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("unknown log level", func(t *testing.T) {
		c := Default()
		c.InputPath = input
		c.TablesDir = dir
		c.LogLevel = "trace"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("column equals list", func(t *testing.T) {
		c := Default()
		c.InputPath = input
		c.TablesDir = dir
		c.Delimiters.List = "|"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestDelimiters_ColumnRune(t *testing.T) {
	if r := DefaultDelimiters().ColumnRune(); r != '|' {
		t.Errorf("ColumnRune = %q", r)
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// DefaultProgressEvery is how many rows pass between progress log lines.
const DefaultProgressEvery = 100_000

// Delimiters configures the input and output record syntax.
type Delimiters struct {
	Column   string `yaml:"column" validate:"delimiter"`    // between fields of a record
	List     string `yaml:"list" validate:"delimiter"`      // between items of a list field
	SubField string `yaml:"sub_field" validate:"delimiter"` // between parts of a procedure or marker
}

// DefaultDelimiters returns "|" for columns, "~" for lists and "&" for sub-fields.
func DefaultDelimiters() Delimiters {
	return Delimiters{Column: "|", List: "~", SubField: "&"}
}

// ColumnRune returns the column delimiter as a rune for encoding/csv.
func (d Delimiters) ColumnRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Column)
	return r
}

// Config holds all runtime configuration for a msgrouper run.
type Config struct {
	TablesDir            string `validate:"required"`
	InputPath            string
	OutputPath           string
	OutputFormat         string `validate:"oneof=csv parquet"`
	LogFormat            string `validate:"oneof=text json"` // "text" or "json"
	LogLevel             string `validate:"oneof=debug info warn error"`
	AllProceduresPrimary bool   // treat every reported procedure as a possible primary one
	EvaluateIncomplete   bool   // lenient validation: never reject a case
	KeepDuplicates       bool
	ProgressEvery        int `validate:"gte=0"`
	Delimiters           Delimiters
}

// Default returns a Config with every optional field set.
func Default() Config {
	return Config{
		OutputFormat:  FormatCSV,
		LogFormat:     "text",
		LogLevel:      "info",
		ProgressEvery: DefaultProgressEvery,
		Delimiters:    DefaultDelimiters(),
	}
}

// yamlConfig is the on-disk YAML structure. Unset keys keep the current value.
type yamlConfig struct {
	TablesDir            *string `yaml:"tables_dir"`
	OutputFormat         *string `yaml:"output_format"`
	LogFormat            *string `yaml:"log_format"`
	LogLevel             *string `yaml:"log_level"`
	AllProceduresPrimary *bool   `yaml:"vsetky_vykony_hlavne"`
	EvaluateIncomplete   *bool   `yaml:"vyhodnot_neuplne_pripady"`
	KeepDuplicates       *bool   `yaml:"ponechaj_duplicity"`
	ProgressEvery        *int    `yaml:"progress_every"`
	Delimiters           *struct {
		Column   *string `yaml:"column"`
		List     *string `yaml:"list"`
		SubField *string `yaml:"sub_field"`
	} `yaml:"delimiters"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setIf(&c.TablesDir, yc.TablesDir)
	setIf(&c.OutputFormat, yc.OutputFormat)
	setIf(&c.LogFormat, yc.LogFormat)
	setIf(&c.LogLevel, yc.LogLevel)
	setIf(&c.AllProceduresPrimary, yc.AllProceduresPrimary)
	setIf(&c.EvaluateIncomplete, yc.EvaluateIncomplete)
	setIf(&c.KeepDuplicates, yc.KeepDuplicates)
	setIf(&c.ProgressEvery, yc.ProgressEvery)
	if d := yc.Delimiters; d != nil {
		setIf(&c.Delimiters.Column, d.Column)
		setIf(&c.Delimiters.List, d.List)
		setIf(&c.Delimiters.SubField, d.SubField)
	}
	return validateStruct(c.Delimiters)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("delimiter", validateDelimiter)
	v.RegisterStructValidation(validateDistinctDelimiters, Delimiters{})
	return v
}

// validateDelimiter accepts a single printable rune that cannot occur inside
// a code.
func validateDelimiter(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r != '"' && unicode.IsPrint(r) && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func validateDistinctDelimiters(sl validator.StructLevel) {
	d := sl.Current().Interface().(Delimiters)
	if d.List == d.SubField {
		sl.ReportError(d.SubField, "SubField", "SubField", "distinct", "List")
	}
	if d.Column == d.List {
		sl.ReportError(d.List, "List", "List", "distinct", "Column")
	}
	if d.Column == d.SubField {
		sl.ReportError(d.SubField, "SubField", "SubField", "distinct", "Column")
	}
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "distinct":
			msgs = append(msgs, fmt.Sprintf("%s delimiter must differ from %s delimiter", fe.Field(), fe.Param()))
		case "delimiter":
			msgs = append(msgs, fmt.Sprintf("%s delimiter %q must be a single printable non-alphanumeric character", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// ValidateTables checks the fields needed to load the annex tables.
func (c *Config) ValidateTables() error {
	if c.TablesDir == "" {
		return fmt.Errorf("--tables is required")
	}
	info, err := os.Stat(c.TablesDir)
	if err != nil {
		return fmt.Errorf("tables directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("tables path %s is not a directory", c.TablesDir)
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input file is required")
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("input file not accessible: %w", err)
	}
	if err := c.ValidateTables(); err != nil {
		return err
	}
	return validateStruct(c)
}

package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/model"
)

// ErrSchema is wrapped by every header or schema mismatch.
var ErrSchema = errors.New("input schema mismatch")

// ErrRow marks a single malformed input record. Reading may continue.
var ErrRow = errors.New("malformed input record")

// ValidateHeader checks that header lists exactly the input columns in
// their fixed order.
func ValidateHeader(header []string) error {
	want := model.InputColumns()
	if len(header) != len(want) {
		return fmt.Errorf("%w: expected %s, found %s", ErrSchema, strings.Join(want, ","), strings.Join(header, ","))
	}
	for i := range want {
		if header[i] != want[i] {
			return fmt.Errorf("%w: expected %s, found %s", ErrSchema, strings.Join(want, ","), strings.Join(header, ","))
		}
	}
	return nil
}

// ValidateSchema checks that a Parquet schema has every input column as a
// string. Column order does not matter in Parquet.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]parquet.Field)
	for _, field := range schema.Fields() {
		columns[field.Name()] = field
	}
	var missing []string
	for _, col := range model.InputColumns() {
		f, ok := columns[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		if !f.Leaf() || f.Type().Kind() != parquet.ByteArray {
			return fmt.Errorf("%w: column %s must be a string", ErrSchema, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrSchema, strings.Join(missing, ", "))
	}
	return nil
}

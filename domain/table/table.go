package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"goexpt/domain/core"
)

// ColumnKind defines the declared type of a result table column
type ColumnKind string

const (
	Nominal ColumnKind = "nominal"
	Numeric ColumnKind = "numeric"
)

// Column describes a single typed column. Nominal columns carry an
// enumerated domain of string values; cells store the index into Domain.
type Column struct {
	Name   string     `json:"name"`
	Kind   ColumnKind `json:"kind"`
	Domain []string   `json:"domain,omitempty"`
}

// NumericColumn creates a numeric column descriptor
func NumericColumn(name string) Column {
	return Column{Name: name, Kind: Numeric}
}

// NominalColumn creates a nominal column descriptor with its declared domain
func NominalColumn(name string, domain ...string) Column {
	return Column{Name: name, Kind: Nominal, Domain: domain}
}

// Table is an immutable-by-convention tabular dataset of typed cells.
// Cells are float64: numeric columns hold the value directly, nominal
// columns hold the index into the column's Domain, and NaN marks a
// missing value in either kind.
type Table struct {
	Name    string
	columns []Column
	rows    [][]float64
}

// New creates an empty table over the given columns
func New(name string, columns []Column) *Table {
	return &Table{Name: name, columns: columns}
}

// Missing returns the missing-value cell sentinel
func Missing() float64 {
	return math.NaN()
}

// IsMissingValue reports whether a cell value is the missing sentinel
func IsMissingValue(v float64) bool {
	return math.IsNaN(v)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Column returns the descriptor for column index col
func (t *Table) Column(col int) (Column, error) {
	if col < 0 || col >= len(t.columns) {
		return Column{}, fmt.Errorf("%w: %d of %d", core.ErrColumnNotFound, col, len(t.columns))
	}
	return t.columns[col], nil
}

// AppendRow adds one row. The row must match the table width, and nominal
// cells must be valid domain indexes or missing.
func (t *Table) AppendRow(values []float64) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(values), len(t.columns))
	}
	for i, v := range values {
		col := t.columns[i]
		if col.Kind != Nominal || IsMissingValue(v) {
			continue
		}
		idx := int(v)
		if float64(idx) != v || idx < 0 || idx >= len(col.Domain) {
			return fmt.Errorf("column %d (%s): %v is not an index into a domain of %d values",
				i, col.Name, v, len(col.Domain))
		}
	}
	row := make([]float64, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Value returns the raw cell at (row, col)
func (t *Table) Value(row, col int) float64 {
	return t.rows[row][col]
}

// IsMissing reports whether the cell at (row, col) is missing
func (t *Table) IsMissing(row, col int) bool {
	return math.IsNaN(t.rows[row][col])
}

// ValueString renders a cell the way it appears in reports and error
// messages: the domain value for nominal cells, a compact decimal form
// for numeric cells, "?" for missing.
func (t *Table) ValueString(row, col int) string {
	v := t.rows[row][col]
	if math.IsNaN(v) {
		return "?"
	}
	if t.columns[col].Kind == Nominal {
		return t.columns[col].Domain[int(v)]
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RowString renders a full row, comma separated, for diagnostics
func (t *Table) RowString(row int) string {
	parts := make([]string, len(t.columns))
	for col := range t.columns {
		parts[col] = t.ValueString(row, col)
	}
	return strings.Join(parts, ",")
}

// NominalIndex finds the domain index of value s in the nominal column col
func (t *Table) NominalIndex(col int, s string) (float64, bool) {
	for i, v := range t.columns[col].Domain {
		if v == s {
			return float64(i), true
		}
	}
	return Missing(), false
}

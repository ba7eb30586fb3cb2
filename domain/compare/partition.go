package compare

import (
	"fmt"

	"goexpt/domain/core"
	"goexpt/domain/table"
)

// UseLastColumn is the sentinel column override meaning "the last column
// of the table", resolved at partition time so it tracks schema changes.
const UseLastColumn = -1

// PartitionSpec selects the structural columns of a result table
type PartitionSpec struct {
	// KeyColumns is a one-based column range expression ("1,3-5") whose
	// joint values identify a result generator.
	KeyColumns string
	// DatasetColumn and RunColumn are zero-based indexes, or UseLastColumn.
	DatasetColumn int
	RunColumn     int
}

// Partitioned is the frozen output of one partition pass: resultsets in
// first-seen order, with the resolved column selection they were built
// against. Rebuilt from scratch whenever the source table or the column
// selection changes; never patched incrementally.
type Partitioned struct {
	Table        *table.Table
	Resultsets   []*Resultset
	DatasetCount int

	DatasetColumn int
	RunColumn     int
	KeyColumns    []int
}

// DatasetName returns the declared domain value for dataset index i
func (p *Partitioned) DatasetName(i int) string {
	col, err := p.Table.Column(p.DatasetColumn)
	if err != nil || i < 0 || i >= len(col.Domain) {
		return ""
	}
	return col.Domain[i]
}

// Partition groups the table's rows into resultsets keyed by the
// selected key columns, sub-grouped by dataset and ordered by run number.
//
// Dataset count is the size of the dataset column's declared domain, not
// the number of values observed: unobserved domain values simply yield
// empty groups. Rows are matched against existing resultsets in creation
// order and the first match wins, so resultset order is first-seen order.
func Partition(t *table.Table, spec PartitionSpec) (*Partitioned, error) {
	if t == nil {
		return nil, core.ErrNoResultTable
	}

	datasetCol := resolveColumn(spec.DatasetColumn, t.ColumnCount())
	runCol := resolveColumn(spec.RunColumn, t.ColumnCount())

	dsColumn, err := t.Column(datasetCol)
	if err != nil {
		return nil, fmt.Errorf("dataset column: %w", err)
	}
	if dsColumn.Kind != table.Nominal {
		return nil, core.NewColumnTypeError(core.ErrNotNominal, datasetCol, dsColumn.Name)
	}
	if _, err := t.Column(runCol); err != nil {
		return nil, fmt.Errorf("run column: %w", err)
	}

	keyCols, err := table.ParseColumnRange(spec.KeyColumns, t.ColumnCount())
	if err != nil {
		return nil, fmt.Errorf("key columns: %w", err)
	}
	if len(keyCols) == 0 {
		return nil, core.ErrNoKeyColumns
	}

	p := &Partitioned{
		Table:         t,
		DatasetCount:  len(dsColumn.Domain),
		DatasetColumn: datasetCol,
		RunColumn:     runCol,
		KeyColumns:    keyCols,
	}

	for row := 0; row < t.RowCount(); row++ {
		if err := checkRequired(t, row, datasetCol, runCol, keyCols); err != nil {
			return nil, err
		}

		dataset := int(t.Value(row, datasetCol))

		var target *Resultset
		for _, rs := range p.Resultsets {
			if rs.matches(t, row, keyCols) {
				target = rs
				break
			}
		}
		if target == nil {
			target = newResultset(row, p.DatasetCount)
			p.Resultsets = append(p.Resultsets, target)
		}
		target.add(dataset, row)
	}

	for _, rs := range p.Resultsets {
		rs.sortRuns(t, runCol)
	}
	return p, nil
}

// resolveColumn maps the UseLastColumn sentinel to the table's last index
func resolveColumn(col, columnCount int) int {
	if col == UseLastColumn {
		return columnCount - 1
	}
	return col
}

// checkRequired fails on the first missing value in the dataset, run or
// any key column, naming the column and reporting the full row.
func checkRequired(t *table.Table, row, datasetCol, runCol int, keyCols []int) error {
	required := make([]int, 0, len(keyCols)+2)
	required = append(required, datasetCol, runCol)
	required = append(required, keyCols...)

	for _, col := range required {
		if t.IsMissing(row, col) {
			c, _ := t.Column(col)
			return core.NewMissingValueError(c.Name, t.RowString(row))
		}
	}
	return nil
}

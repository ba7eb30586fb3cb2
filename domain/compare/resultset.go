package compare

import (
	"sort"

	"goexpt/domain/table"
)

// Resultset groups all rows of one result generator: the rows that agree
// with the template row on every key column. Rows are held per dataset,
// in run order once the owning partition is frozen.
type Resultset struct {
	template int     // row index of the first row seen with this key combination
	groups   [][]int // per dataset domain index, row indexes in insertion order
}

func newResultset(template int, datasetCount int) *Resultset {
	return &Resultset{
		template: template,
		groups:   make([][]int, datasetCount),
	}
}

// Template returns the row index of the template row
func (r *Resultset) Template() int {
	return r.template
}

// Rows returns the row indexes for one dataset, in run order
func (r *Resultset) Rows(dataset int) []int {
	if dataset < 0 || dataset >= len(r.groups) {
		return nil
	}
	return r.groups[dataset]
}

// RowCount returns the total number of rows across all datasets
func (r *Resultset) RowCount() int {
	n := 0
	for _, g := range r.groups {
		n += len(g)
	}
	return n
}

// matches reports whether row agrees with the template on every key
// column, by numeric cell equality.
func (r *Resultset) matches(t *table.Table, row int, keyCols []int) bool {
	for _, col := range keyCols {
		if t.Value(row, col) != t.Value(r.template, col) {
			return false
		}
	}
	return true
}

func (r *Resultset) add(dataset int, row int) {
	r.groups[dataset] = append(r.groups[dataset], row)
}

// sortRuns orders every dataset group ascending by run value. The sort is
// stable: ties in run number preserve original relative order.
func (r *Resultset) sortRuns(t *table.Table, runCol int) {
	for _, g := range r.groups {
		rows := g
		sort.SliceStable(rows, func(i, j int) bool {
			return t.Value(rows[i], runCol) < t.Value(rows[j], runCol)
		})
	}
}

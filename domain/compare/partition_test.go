package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goexpt/domain/core"
	"goexpt/domain/table"
)

// experimentTable builds a small result table: scheme+options identify
// the generator, dataset and run give the structure, score is the metric.
func experimentTable(t *testing.T, rows [][]float64) *table.Table {
	t.Helper()
	tbl := table.New("experiment", []table.Column{
		table.NominalColumn("scheme", "bayes", "trees"),
		table.NominalColumn("options", "-d 1", "-d 2"),
		table.NominalColumn("dataset", "iris", "vote", "glass"),
		table.NumericColumn("run"),
		table.NumericColumn("score"),
	})
	for _, row := range rows {
		require.NoError(t, tbl.AppendRow(row))
	}
	return tbl
}

func defaultSpec() PartitionSpec {
	return PartitionSpec{KeyColumns: "1-2", DatasetColumn: 2, RunColumn: 3}
}

func TestPartitionGroupsByKeyColumns(t *testing.T) {
	tbl := experimentTable(t, [][]float64{
		{0, 0, 0, 1, 0.9},
		{1, 0, 0, 1, 0.8},
		{0, 0, 0, 2, 0.91},
		{1, 0, 0, 2, 0.81},
		{0, 1, 0, 1, 0.7}, // same scheme, different options: third resultset
	})

	p, err := Partition(tbl, defaultSpec())
	require.NoError(t, err)

	require.Len(t, p.Resultsets, 3)
	assert.Equal(t, 3, p.DatasetCount, "dataset count follows the declared domain")

	// first-seen order
	assert.Equal(t, "bayes -d 1", p.Label(0, ""))
	assert.Equal(t, "trees -d 1", p.Label(1, ""))
	assert.Equal(t, "bayes -d 2", p.Label(2, ""))

	assert.Len(t, p.Resultsets[0].Rows(0), 2)
	assert.Len(t, p.Resultsets[1].Rows(0), 2)
	assert.Len(t, p.Resultsets[2].Rows(0), 1)
}

func TestPartitionCompleteness(t *testing.T) {
	tbl := experimentTable(t, [][]float64{
		{0, 0, 0, 1, 0.9},
		{1, 0, 1, 1, 0.8},
		{0, 0, 2, 1, 0.7},
		{1, 0, 0, 2, 0.6},
		{0, 0, 1, 2, 0.5},
	})

	p, err := Partition(tbl, defaultSpec())
	require.NoError(t, err)

	// Every row lands in exactly one resultset×dataset group.
	seen := make(map[int]int)
	for _, rs := range p.Resultsets {
		for ds := 0; ds < p.DatasetCount; ds++ {
			for _, row := range rs.Rows(ds) {
				seen[row]++
			}
		}
	}
	assert.Len(t, seen, tbl.RowCount())
	for row, count := range seen {
		assert.Equal(t, 1, count, "row %d", row)
	}
}

func TestPartitionSortsRunsStably(t *testing.T) {
	// Runs out of order, with a duplicate run number whose original
	// relative order must survive the stable sort.
	tbl := experimentTable(t, [][]float64{
		{0, 0, 0, 3, 0.1},
		{0, 0, 0, 1, 0.2},
		{0, 0, 0, 2, 0.3},
		{0, 0, 0, 2, 0.4},
	})

	p, err := Partition(tbl, defaultSpec())
	require.NoError(t, err)

	rows := p.Resultsets[0].Rows(0)
	require.Len(t, rows, 4)

	runs := make([]float64, len(rows))
	for i, row := range rows {
		runs[i] = tbl.Value(row, 3)
	}
	assert.Equal(t, []float64{1, 2, 2, 3}, runs)

	// rows 2 and 3 both have run 2; insertion order preserved
	assert.Equal(t, 2, rows[1])
	assert.Equal(t, 3, rows[2])
}

func TestPartitionDeterminism(t *testing.T) {
	tbl := experimentTable(t, [][]float64{
		{1, 1, 2, 2, 0.5},
		{0, 0, 0, 1, 0.9},
		{1, 1, 0, 1, 0.8},
		{0, 0, 2, 2, 0.7},
	})

	first, err := Partition(tbl, defaultSpec())
	require.NoError(t, err)
	second, err := Partition(tbl, defaultSpec())
	require.NoError(t, err)

	require.Len(t, second.Resultsets, len(first.Resultsets))
	for i := range first.Resultsets {
		assert.Equal(t, first.Label(i, ""), second.Label(i, ""))
		for ds := 0; ds < first.DatasetCount; ds++ {
			assert.Equal(t, first.Resultsets[i].Rows(ds), second.Resultsets[i].Rows(ds))
		}
	}
}

func TestPartitionUseLastColumnResolution(t *testing.T) {
	tbl := table.New("tail_dataset", []table.Column{
		table.NominalColumn("scheme", "a", "b"),
		table.NumericColumn("run"),
		table.NominalColumn("dataset", "d1"),
	})
	require.NoError(t, tbl.AppendRow([]float64{0, 1, 0}))
	require.NoError(t, tbl.AppendRow([]float64{1, 1, 0}))

	p, err := Partition(tbl, PartitionSpec{KeyColumns: "1", DatasetColumn: UseLastColumn, RunColumn: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, p.DatasetColumn)
	assert.Equal(t, 1, p.DatasetCount)
}

func TestPartitionRejectsNumericDatasetColumn(t *testing.T) {
	tbl := experimentTable(t, [][]float64{{0, 0, 0, 1, 0.9}})

	_, err := Partition(tbl, PartitionSpec{KeyColumns: "1-2", DatasetColumn: 4, RunColumn: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotNominal)
}

func TestPartitionRejectsEmptyKeyColumns(t *testing.T) {
	tbl := experimentTable(t, [][]float64{{0, 0, 0, 1, 0.9}})

	_, err := Partition(tbl, PartitionSpec{KeyColumns: "", DatasetColumn: 2, RunColumn: 3})
	assert.ErrorIs(t, err, core.ErrNoKeyColumns)

	// A range that clips to nothing is just as empty.
	_, err = Partition(tbl, PartitionSpec{KeyColumns: "9-12", DatasetColumn: 2, RunColumn: 3})
	assert.ErrorIs(t, err, core.ErrNoKeyColumns)
}

func TestPartitionRejectsMissingRequiredValue(t *testing.T) {
	tbl := experimentTable(t, [][]float64{
		{0, 0, 0, 1, 0.9},
		{0, table.Missing(), 0, 2, 0.8},
	})

	_, err := Partition(tbl, defaultSpec())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingValue)
	// The message reports the offending row's content.
	assert.Contains(t, err.Error(), "bayes,?,iris,2,0.8")
}

func TestPartitionRejectsNilTable(t *testing.T) {
	_, err := Partition(nil, defaultSpec())
	assert.ErrorIs(t, err, core.ErrNoResultTable)
}

func TestPartitionUnobservedDatasetYieldsEmptyGroup(t *testing.T) {
	// "glass" is declared but never appears in a row.
	tbl := experimentTable(t, [][]float64{
		{0, 0, 0, 1, 0.9},
		{0, 0, 1, 1, 0.8},
	})

	p, err := Partition(tbl, defaultSpec())
	require.NoError(t, err)
	assert.Equal(t, 3, p.DatasetCount)
	assert.Empty(t, p.Resultsets[0].Rows(2))
}

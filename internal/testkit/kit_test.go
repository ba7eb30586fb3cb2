package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goexpt/domain/table"
)

func TestResultTableShape(t *testing.T) {
	tbl, err := NewKit(3).ResultTable(TableSpec{
		Generators: []GeneratorSpec{
			{Scheme: "A", Options: "-x 1", Means: map[string]float64{"d1": 10, "d2": 20}, Noise: 1},
			{Scheme: "B", Options: "-x 2", Means: map[string]float64{"d1": 12, "d2": 18}, Noise: 1},
		},
		Datasets: []string{"d1", "d2"},
		Runs:     5,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, tbl.ColumnCount())
	assert.Equal(t, 2*2*5, tbl.RowCount())

	scheme, err := tbl.Column(ColScheme)
	require.NoError(t, err)
	assert.Equal(t, table.Nominal, scheme.Kind)
	assert.Equal(t, []string{"A", "B"}, scheme.Domain)

	run, err := tbl.Column(ColRun)
	require.NoError(t, err)
	assert.Equal(t, table.Numeric, run.Kind)

	// Rows come out run-major per generator and dataset.
	assert.Equal(t, 1.0, tbl.Value(0, ColRun))
	assert.Equal(t, 5.0, tbl.Value(4, ColRun))
	assert.Equal(t, "d1", tbl.ValueString(0, ColDataset))
	assert.Equal(t, "d2", tbl.ValueString(5, ColDataset))
}

func TestResultTableSkipsAbsentDatasets(t *testing.T) {
	tbl, err := NewKit(3).ResultTable(TableSpec{
		Generators: []GeneratorSpec{
			{Scheme: "A", Means: map[string]float64{"d1": 10}},
		},
		Datasets: []string{"d1", "d2"},
		Runs:     4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, tbl.RowCount())
	for row := 0; row < tbl.RowCount(); row++ {
		assert.Equal(t, "d1", tbl.ValueString(row, ColDataset))
	}
}

func TestResultTableDeterminism(t *testing.T) {
	spec := TableSpec{
		Generators: []GeneratorSpec{
			{Scheme: "A", Options: "-x 1", Means: map[string]float64{"d1": 10}, Noise: 2},
		},
		Datasets: []string{"d1"},
		Runs:     10,
	}

	a, err := NewKit(42).ResultTable(spec)
	require.NoError(t, err)
	b, err := NewKit(42).ResultTable(spec)
	require.NoError(t, err)
	other, err := NewKit(43).ResultTable(spec)
	require.NoError(t, err)

	sameScores := make([]float64, 0, 10)
	for row := 0; row < a.RowCount(); row++ {
		assert.Equal(t, a.Value(row, ColScore), b.Value(row, ColScore))
		sameScores = append(sameScores, a.Value(row, ColScore))
	}

	differs := false
	for row := 0; row < other.RowCount(); row++ {
		if other.Value(row, ColScore) != sameScores[row] {
			differs = true
			break
		}
	}
	assert.True(t, differs, "different seeds produce different scores")
}

func TestTwoGeneratorTable(t *testing.T) {
	tbl, err := NewKit(0).TwoGeneratorTable(3)
	require.NoError(t, err)

	assert.Equal(t, 12, tbl.RowCount())

	// Interleaved per run: A/d1, B/d1, A/d2, B/d2.
	assert.Equal(t, "A", tbl.ValueString(0, ColScheme))
	assert.Equal(t, "B", tbl.ValueString(1, ColScheme))
	assert.Equal(t, tbl.Value(0, ColScore), tbl.Value(1, ColScore), "identical on the first dataset")
	assert.Less(t, tbl.Value(2, ColScore), tbl.Value(3, ColScore), "B higher on the second dataset")
}

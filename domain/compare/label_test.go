package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goexpt/domain/table"
)

func TestLabelJoinsKeyColumnValues(t *testing.T) {
	tbl := table.New("labels", []table.Column{
		table.NominalColumn("scheme", "org.lab.classifiers.bayes.NaiveBayes", "org.lab.classifiers.trees.J48"),
		table.NominalColumn("options", "", "-C 0.25"),
		table.NominalColumn("dataset", "iris"),
		table.NumericColumn("run"),
		table.NumericColumn("score"),
	})
	require.NoError(t, tbl.AppendRow([]float64{0, 0, 0, 1, 0.9}))
	require.NoError(t, tbl.AppendRow([]float64{1, 1, 0, 1, 0.8}))

	p, err := Partition(tbl, PartitionSpec{KeyColumns: "1-2", DatasetColumn: 2, RunColumn: 3})
	require.NoError(t, err)

	// empty options value trims away
	assert.Equal(t, "org.lab.classifiers.bayes.NaiveBayes", p.Label(0, ""))
	assert.Equal(t, "org.lab.classifiers.trees.J48 -C 0.25", p.Label(1, ""))

	// known common prefix is stripped for readability
	assert.Equal(t, "bayes.NaiveBayes", p.Label(0, "org.lab.classifiers."))
	assert.Equal(t, "trees.J48 -C 0.25", p.Label(1, "org.lab.classifiers."))

	// non-matching prefix leaves the label alone
	assert.Equal(t, "org.lab.classifiers.bayes.NaiveBayes", p.Label(0, "com.other."))

	assert.Equal(t, []string{"bayes.NaiveBayes", "trees.J48 -C 0.25"}, p.Labels("org.lab.classifiers."))

	// out of range is tolerated
	assert.Equal(t, "", p.Label(5, ""))
}

func TestLabelNumericKeyColumn(t *testing.T) {
	tbl := table.New("numeric_key", []table.Column{
		table.NumericColumn("fold_count"),
		table.NominalColumn("dataset", "d1"),
		table.NumericColumn("run"),
	})
	require.NoError(t, tbl.AppendRow([]float64{10, 0, 1}))

	p, err := Partition(tbl, PartitionSpec{KeyColumns: "1", DatasetColumn: 1, RunColumn: 2})
	require.NoError(t, err)
	assert.Equal(t, "10", p.Label(0, ""))
}

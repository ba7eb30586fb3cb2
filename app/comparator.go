package app

import (
	"fmt"
	"sync"

	"goexpt/domain/compare"
	"goexpt/domain/core"
	"goexpt/domain/table"
	"goexpt/internal"
	"goexpt/ports"
)

// DefaultSignificance is the conventional comparison level
const DefaultSignificance = 0.05

// Comparator is the experiment-comparison engine. It owns the source
// result table, the column configuration, and a lazily revalidated
// partition cache, and answers paired comparisons and aggregate reports.
//
// The partition cache is guarded by a mutex, so reads over a settled
// configuration are safe from concurrent goroutines. Configuration
// setters remain single-owner: they must finish before reads begin.
// Independent Comparators over the same table may run fully in parallel.
type Comparator struct {
	tester ports.PairedTesterPort
	logger *internal.Logger

	significance float64
	stripPrefix  string

	mu          sync.Mutex
	source      *table.Table
	spec        compare.PartitionSpec
	partitioned *compare.Partitioned
	valid       bool
}

// NewComparator creates a Comparator using the given paired-difference
// statistic service. Dataset and run columns default to the table's last
// column; the significance level defaults to DefaultSignificance.
func NewComparator(tester ports.PairedTesterPort, logger *internal.Logger) *Comparator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Comparator{
		tester: tester,
		logger: logger,
		spec: compare.PartitionSpec{
			DatasetColumn: compare.UseLastColumn,
			RunColumn:     compare.UseLastColumn,
		},
		significance: DefaultSignificance,
	}
}

// SetResultTable replaces the source table and invalidates the partition
func (c *Comparator) SetResultTable(t *table.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = t
	c.valid = false
}

// SetKeyColumns sets the one-based key column range expression ("1,3-5")
func (c *Comparator) SetKeyColumns(expr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec.KeyColumns = expr
	c.valid = false
}

// SetDatasetColumn overrides the dataset column index, or restores the
// use-last default with compare.UseLastColumn
func (c *Comparator) SetDatasetColumn(col int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec.DatasetColumn = col
	c.valid = false
}

// SetRunColumn overrides the run column index, or restores the use-last
// default with compare.UseLastColumn
func (c *Comparator) SetRunColumn(col int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spec.RunColumn = col
	c.valid = false
}

// SetSignificance sets the comparison level, a probability in (0,1)
func (c *Comparator) SetSignificance(level float64) {
	c.significance = level
}

// Significance returns the configured comparison level
func (c *Comparator) Significance() float64 {
	return c.significance
}

// SetLabelPrefix configures a common prefix stripped from resultset
// labels for readability
func (c *Comparator) SetLabelPrefix(prefix string) {
	c.stripPrefix = prefix
}

// clone returns an independent Comparator with the same configuration
// and its own partition cache, for parallel reporting sessions.
func (c *Comparator) clone() *Comparator {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Comparator{
		tester:       c.tester,
		logger:       c.logger,
		source:       c.source,
		spec:         c.spec,
		significance: c.significance,
		stripPrefix:  c.stripPrefix,
	}
}

// partition returns the current partition, recomputing it if a setter
// invalidated the cache since the last access.
func (c *Comparator) partition() (*compare.Partitioned, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.partitioned, nil
	}
	if c.source == nil {
		return nil, core.ErrNoResultTable
	}
	p, err := compare.Partition(c.source, c.spec)
	if err != nil {
		return nil, err
	}
	c.partitioned = p
	c.valid = true
	return p, nil
}

// DatasetCount returns the number of declared datasets, or 0 when the
// configuration cannot be partitioned.
func (c *Comparator) DatasetCount() int {
	p, err := c.partition()
	if err != nil {
		return 0
	}
	return p.DatasetCount
}

// ResultsetCount returns the number of resultsets, or 0 when the
// configuration cannot be partitioned.
func (c *Comparator) ResultsetCount() int {
	p, err := c.partition()
	if err != nil {
		return 0
	}
	return len(p.Resultsets)
}

// Label returns the display label of resultset i, or "" when the
// configuration cannot be partitioned.
func (c *Comparator) Label(i int) string {
	p, err := c.partition()
	if err != nil {
		return ""
	}
	return p.Label(i, c.stripPrefix)
}

// Labels returns every resultset label in resultset index order
func (c *Comparator) Labels() []string {
	p, err := c.partition()
	if err != nil {
		return nil
	}
	return p.Labels(c.stripPrefix)
}

// DatasetName returns the declared name of dataset index i
func (c *Comparator) DatasetName(i int) string {
	p, err := c.partition()
	if err != nil {
		return ""
	}
	return p.DatasetName(i)
}

// valueColumn validates that col is a numeric column of the source table
func (c *Comparator) valueColumn(p *compare.Partitioned, col int) (table.Column, error) {
	column, err := p.Table.Column(col)
	if err != nil {
		return table.Column{}, fmt.Errorf("value column: %w", err)
	}
	if column.Kind != table.Numeric {
		return table.Column{}, core.NewColumnTypeError(core.ErrNotNumeric, col, column.Name)
	}
	return column, nil
}

// Compare runs the paired comparison between resultsets a and b on one
// dataset, over the values of the numeric column valueCol.
//
// The two run-sorted row groups are paired by position, not by matching
// run numbers; positions whose run numbers disagree produce a non-fatal
// warning in the result. Missing values in the value column, a missing
// group on either side, and mismatched group sizes are hard errors.
func (c *Comparator) Compare(dataset, a, b, valueCol int) (*compare.PairedStats, error) {
	p, err := c.partition()
	if err != nil {
		return nil, err
	}
	column, err := c.valueColumn(p, valueCol)
	if err != nil {
		return nil, err
	}
	if a < 0 || a >= len(p.Resultsets) || b < 0 || b >= len(p.Resultsets) {
		return nil, fmt.Errorf("resultset index out of range: %d, %d of %d", a, b, len(p.Resultsets))
	}
	if dataset < 0 || dataset >= p.DatasetCount {
		return nil, fmt.Errorf("dataset index out of range: %d of %d", dataset, p.DatasetCount)
	}

	dsName := p.DatasetName(dataset)
	labelA := p.Label(a, c.stripPrefix)
	labelB := p.Label(b, c.stripPrefix)

	rowsA := p.Resultsets[a].Rows(dataset)
	rowsB := p.Resultsets[b].Rows(dataset)
	if len(rowsA) == 0 {
		return nil, core.NewMissingGroupError(labelA, dsName)
	}
	if len(rowsB) == 0 {
		return nil, core.NewMissingGroupError(labelB, dsName)
	}
	if len(rowsA) != len(rowsB) {
		return nil, core.NewSizeMismatchError(labelA, labelB, dsName, len(rowsA), len(rowsB))
	}

	var warnings []string
	xs := make([]float64, len(rowsA))
	ys := make([]float64, len(rowsB))
	for k := range rowsA {
		runA := p.Table.Value(rowsA[k], p.RunColumn)
		runB := p.Table.Value(rowsB[k], p.RunColumn)
		if runA != runB {
			w := fmt.Sprintf("run mismatch at position %d for dataset %q: %q has run %s, %q has run %s",
				k, dsName,
				labelA, p.Table.ValueString(rowsA[k], p.RunColumn),
				labelB, p.Table.ValueString(rowsB[k], p.RunColumn))
			warnings = append(warnings, w)
			c.logger.Warn("%s", w)
		}

		if p.Table.IsMissing(rowsA[k], valueCol) {
			return nil, core.NewMissingValueError(column.Name, p.Table.RowString(rowsA[k]))
		}
		if p.Table.IsMissing(rowsB[k], valueCol) {
			return nil, core.NewMissingValueError(column.Name, p.Table.RowString(rowsB[k]))
		}
		xs[k] = p.Table.Value(rowsA[k], valueCol)
		ys[k] = p.Table.Value(rowsB[k], valueCol)
	}

	res, err := c.tester.Test(xs, ys, c.significance)
	if err != nil {
		return nil, fmt.Errorf("paired test for dataset %q (%s vs %s): %w", dsName, labelA, labelB, err)
	}

	return &compare.PairedStats{
		Dataset:   dsName,
		LabelA:    labelA,
		LabelB:    labelB,
		N:         res.N,
		MeanA:     res.MeanX,
		MeanB:     res.MeanY,
		VarianceA: res.VarX,
		VarianceB: res.VarY,
		MeanDiff:  res.MeanDiff,
		TStat:     res.TStat,
		PValue:    res.PValue,
		Outcome:   compare.Outcome(res.Significance),
		Warnings:  warnings,
	}, nil
}

package testkit

import (
	"fmt"
	"math/rand"

	"goexpt/domain/table"
)

// GeneratorSpec describes one synthetic result generator: its identity
// columns and the score distribution it produces per dataset.
type GeneratorSpec struct {
	Scheme  string
	Options string
	// Means maps dataset name to the generator's mean score there
	Means map[string]float64
	// Noise is the score standard deviation around the mean
	Noise float64
}

// TableSpec controls a synthesized experiment result table
type TableSpec struct {
	Generators []GeneratorSpec
	Datasets   []string
	Runs       int
	Seed       int64
}

// Kit synthesizes experiment result tables with a deterministic seed.
// The produced layout is: scheme (nominal), options (nominal), dataset
// (nominal), run (numeric), score (numeric).
type Kit struct {
	rng *rand.Rand
}

// NewKit creates a test kit with a seeded random stream
func NewKit(seed int64) *Kit {
	return &Kit{rng: rand.New(rand.NewSource(seed))}
}

// Column indexes of the synthesized layout
const (
	ColScheme  = 0
	ColOptions = 1
	ColDataset = 2
	ColRun     = 3
	ColScore   = 4
)

// KeyColumnRange selects the scheme and options columns, one-based
const KeyColumnRange = "1-2"

// ResultTable synthesizes a full experiment table: one row per
// generator × dataset × run, rows in run-major order per group.
func (k *Kit) ResultTable(spec TableSpec) (*table.Table, error) {
	schemes := make([]string, 0, len(spec.Generators))
	options := make([]string, 0, len(spec.Generators))
	for _, g := range spec.Generators {
		schemes = appendUnique(schemes, g.Scheme)
		options = appendUnique(options, g.Options)
	}

	t := table.New("synthetic_results", []table.Column{
		table.NominalColumn("scheme", schemes...),
		table.NominalColumn("options", options...),
		table.NominalColumn("dataset", spec.Datasets...),
		table.NumericColumn("run"),
		table.NumericColumn("score"),
	})

	for _, g := range spec.Generators {
		schemeIdx, _ := t.NominalIndex(ColScheme, g.Scheme)
		optionsIdx, _ := t.NominalIndex(ColOptions, g.Options)
		for dsIdx, ds := range spec.Datasets {
			mean, ok := g.Means[ds]
			if !ok {
				continue // generator never ran on this dataset
			}
			for run := 1; run <= spec.Runs; run++ {
				score := mean
				if g.Noise > 0 {
					score += k.rng.NormFloat64() * g.Noise
				}
				err := t.AppendRow([]float64{schemeIdx, optionsIdx, float64(dsIdx), float64(run), score})
				if err != nil {
					return nil, fmt.Errorf("synthesizing row for %s/%s: %w", g.Scheme, ds, err)
				}
			}
		}
	}
	return t, nil
}

// TwoGeneratorTable builds the canonical fixture: generators A and B over
// two datasets, identical scores on the first dataset and B consistently
// higher than A on the second.
func (k *Kit) TwoGeneratorTable(runs int) (*table.Table, error) {
	t := table.New("two_generators", []table.Column{
		table.NominalColumn("scheme", "A", "B"),
		table.NominalColumn("options", "-x 1"),
		table.NominalColumn("dataset", "d1", "d2"),
		table.NumericColumn("run"),
		table.NumericColumn("score"),
	})

	for run := 1; run <= runs; run++ {
		shared := 10 + float64(run)
		rows := [][]float64{
			{0, 0, 0, float64(run), shared},              // A on d1
			{1, 0, 0, float64(run), shared},              // B on d1, identical
			{0, 0, 1, float64(run), 50 + float64(run)},   // A on d2
			{1, 0, 1, float64(run), 60 + float64(run)*2}, // B on d2, consistently higher
		}
		for _, row := range rows {
			if err := t.AppendRow(row); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func appendUnique(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}

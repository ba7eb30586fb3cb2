package app

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"goexpt/domain/compare"
	"goexpt/domain/table"
)

// WinMatrix runs the paired comparison over every unordered resultset
// pair and every dataset, folding significant outcomes into an N×N win
// matrix. Per-dataset comparison failures are logged and counted as
// skipped; they never abort the matrix.
func (c *Comparator) WinMatrix(valueCol int) (*compare.WinMatrix, error) {
	p, err := c.partition()
	if err != nil {
		return nil, err
	}
	if _, err := c.valueColumn(p, valueCol); err != nil {
		return nil, err
	}

	n := len(p.Resultsets)
	m := compare.NewWinMatrix(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for ds := 0; ds < p.DatasetCount; ds++ {
				stats, err := c.Compare(ds, i, j, valueCol)
				if err != nil {
					c.logger.Warn("skipping dataset %q for %q vs %q: %v",
						p.DatasetName(ds), p.Label(i, c.stripPrefix), p.Label(j, c.stripPrefix), err)
					m.Skipped++
					continue
				}
				m.Comparisons++
				switch {
				case stats.Outcome < 0:
					m.Wins[i][j]++
				case stats.Outcome > 0:
					m.Wins[j][i]++
				}
			}
		}
	}
	return m, nil
}

// Ranking folds the win matrix into one row per resultset, ordered
// descending by net wins (wins minus losses). Ties keep resultset index
// order.
func (c *Comparator) Ranking(valueCol int) ([]compare.RankingRow, error) {
	m, err := c.WinMatrix(valueCol)
	if err != nil {
		return nil, err
	}
	p, err := c.partition()
	if err != nil {
		return nil, err
	}

	n := m.Size()
	rows := make([]compare.RankingRow, n)
	for i := range rows {
		rows[i] = compare.RankingRow{Index: i, Label: p.Label(i, c.stripPrefix)}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			won := m.Wins[i][j]
			rows[j].Wins += won
			rows[j].Diff += won
			rows[i].Losses += won
			rows[i].Diff -= won
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Diff > rows[b].Diff
	})
	return rows, nil
}

// FullTable builds the per-base comparison view: for every dataset, the
// base resultset's own mean plus, for every other resultset, its mean
// and a significance marker against the base, with win/tie/loss tallies
// accumulated across datasets.
//
// Datasets where the base comparison itself fails are recorded in
// Skipped rather than silently dropped. A failure against one other
// resultset leaves only that cell empty.
func (c *Comparator) FullTable(base, valueCol int) (*compare.FullTable, error) {
	p, err := c.partition()
	if err != nil {
		return nil, err
	}
	column, err := c.valueColumn(p, valueCol)
	if err != nil {
		return nil, err
	}
	n := len(p.Resultsets)
	if base < 0 || base >= n {
		return nil, fmt.Errorf("base resultset index out of range: %d of %d", base, n)
	}

	ft := &compare.FullTable{
		Base:        base,
		BaseLabel:   p.Label(base, c.stripPrefix),
		ValueColumn: column.Name,
		Tallies:     make([]compare.WinTieLoss, n),
	}

	for ds := 0; ds < p.DatasetCount; ds++ {
		// Comparing the base against itself yields its own descriptive
		// stats; the paired tester reports identical sequences as neutral.
		baseStats, err := c.Compare(ds, base, base, valueCol)
		if err != nil {
			c.logger.Warn("skipping dataset %q for base %q: %v", p.DatasetName(ds), ft.BaseLabel, err)
			ft.Skipped = append(ft.Skipped, p.DatasetName(ds))
			continue
		}

		row := compare.FullTableRow{
			Dataset: baseStats.Dataset,
			Runs:    baseStats.N,
			Cells:   make([]compare.FullTableCell, n),
		}
		row.Cells[base] = compare.FullTableCell{Mean: baseStats.MeanA, Marker: compare.MarkerNone}

		for r := 0; r < n; r++ {
			if r == base {
				continue
			}
			stats, err := c.Compare(ds, base, r, valueCol)
			if err != nil {
				c.logger.Warn("no comparison for dataset %q, %q vs %q: %v",
					p.DatasetName(ds), ft.BaseLabel, p.Label(r, c.stripPrefix), err)
				row.Cells[r] = compare.FullTableCell{Mean: table.Missing()}
				continue
			}
			cell := compare.FullTableCell{Mean: stats.MeanB, Marker: compare.MarkerNone}
			switch {
			case stats.Outcome > 0: // base significantly higher
				cell.Marker = compare.MarkerWorse
				ft.Tallies[r].Losses++
			case stats.Outcome < 0: // base significantly lower
				cell.Marker = compare.MarkerBetter
				ft.Tallies[r].Wins++
			default:
				ft.Tallies[r].Ties++
			}
			row.Cells[r] = cell
		}
		ft.Rows = append(ft.Rows, row)
	}
	return ft, nil
}

// FullTables builds the full comparison table for every base resultset.
// Each base runs on an independent clone of this Comparator, so the
// tables are computed concurrently without sharing the partition cache.
func (c *Comparator) FullTables(ctx context.Context, valueCol int) ([]*compare.FullTable, error) {
	p, err := c.partition()
	if err != nil {
		return nil, err
	}
	if _, err := c.valueColumn(p, valueCol); err != nil {
		return nil, err
	}

	tables := make([]*compare.FullTable, len(p.Resultsets))
	g, _ := errgroup.WithContext(ctx)
	for base := range tables {
		base := base
		g.Go(func() error {
			ft, err := c.clone().FullTable(base, valueCol)
			if err != nil {
				return err
			}
			tables[base] = ft
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

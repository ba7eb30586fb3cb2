package app

import (
	"context"
	"fmt"
	"math"
	"strings"

	"goexpt/domain/compare"
	"goexpt/domain/core"
)

// Header is the report preamble
type Header struct {
	ValueColumn  string         `json:"value_column"`
	Datasets     int            `json:"datasets"`
	Resultsets   int            `json:"resultsets"`
	Significance float64        `json:"significance"`
	GeneratedAt  core.Timestamp `json:"generated_at"`
}

// LegendEntry maps a resultset code to its display label
type LegendEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Summary is the win matrix together with the codes and labels that
// identify its rows and columns.
type Summary struct {
	Codes  []string           `json:"codes"`
	Labels []string           `json:"labels"`
	Matrix *compare.WinMatrix `json:"matrix"`
}

// Report bundles every derived view over one value column
type Report struct {
	ID        core.ReportID  `json:"id"`
	CreatedAt core.Timestamp `json:"created_at"`

	Header     Header               `json:"header"`
	Legend     []LegendEntry        `json:"legend"`
	Summary    *Summary             `json:"summary"`
	Ranking    []compare.RankingRow `json:"ranking"`
	FullTables []*compare.FullTable `json:"full_tables"`
}

// resultsetCode yields the display code for resultset index i:
// a..z, then aa, ab, ... past 26.
func resultsetCode(i int) string {
	i++
	var b []byte
	for i > 0 {
		i--
		b = append([]byte{byte('a' + i%26)}, b...)
		i /= 26
	}
	return string(b)
}

// Summary builds the win matrix view with resultset codes and labels
func (c *Comparator) Summary(valueCol int) (*Summary, error) {
	m, err := c.WinMatrix(valueCol)
	if err != nil {
		return nil, err
	}
	n := m.Size()
	s := &Summary{
		Codes:  make([]string, n),
		Labels: c.Labels(),
		Matrix: m,
	}
	for i := 0; i < n; i++ {
		s.Codes[i] = resultsetCode(i)
	}
	return s, nil
}

// Grid renders the summary as a fixed-width text matrix: one column per
// resultset code, one row per resultset, with the code legend on the
// right. Cell counts say how many datasets the column resultset
// significantly outperformed the row resultset on.
func (s *Summary) Grid(datasetCount int) string {
	n := s.Matrix.Size()

	// Width fits the larger of resultset count and dataset count, and
	// the widest code.
	width := len(fmt.Sprintf("%d", max(n, datasetCount)))
	for _, code := range s.Codes {
		if len(code) > width {
			width = len(code)
		}
	}

	var b strings.Builder
	for j := 0; j < n; j++ {
		fmt.Fprintf(&b, "%*s ", width, s.Codes[j])
	}
	b.WriteString("  (wins)\n")

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				fmt.Fprintf(&b, "%*s ", width, "-")
			} else {
				fmt.Fprintf(&b, "%*d ", width, s.Matrix.Wins[i][j])
			}
		}
		fmt.Fprintf(&b, "| %s = %s\n", s.Codes[i], s.Labels[i])
	}
	return b.String()
}

// BuildReport computes every view over one value column: header, legend,
// summary matrix, ranking, and the full table for every base resultset.
func (c *Comparator) BuildReport(ctx context.Context, valueCol int) (*Report, error) {
	p, err := c.partition()
	if err != nil {
		return nil, err
	}
	column, err := c.valueColumn(p, valueCol)
	if err != nil {
		return nil, err
	}

	summary, err := c.Summary(valueCol)
	if err != nil {
		return nil, err
	}
	ranking, err := c.Ranking(valueCol)
	if err != nil {
		return nil, err
	}
	fullTables, err := c.FullTables(ctx, valueCol)
	if err != nil {
		return nil, err
	}

	legend := make([]LegendEntry, len(summary.Codes))
	for i := range legend {
		legend[i] = LegendEntry{Code: summary.Codes[i], Label: summary.Labels[i]}
	}

	return &Report{
		ID:        core.ReportID(core.NewID()),
		CreatedAt: core.Now(),
		Header: Header{
			ValueColumn:  column.Name,
			Datasets:     p.DatasetCount,
			Resultsets:   len(p.Resultsets),
			Significance: c.significance,
			GeneratedAt:  core.Now(),
		},
		Legend:     legend,
		Summary:    summary,
		Ranking:    ranking,
		FullTables: fullTables,
	}, nil
}

// Markdown renders the complete report as a Markdown document
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# Paired comparison report\n\n")
	fmt.Fprintf(&b, "- Analyzed column: %s\n", r.Header.ValueColumn)
	fmt.Fprintf(&b, "- Datasets: %d\n", r.Header.Datasets)
	fmt.Fprintf(&b, "- Resultsets: %d\n", r.Header.Resultsets)
	fmt.Fprintf(&b, "- Significance: %g\n", r.Header.Significance)
	fmt.Fprintf(&b, "- Comparisons: %d (skipped: %d)\n\n",
		r.Summary.Matrix.Comparisons, r.Summary.Matrix.Skipped)

	b.WriteString("## Legend\n\n")
	for _, e := range r.Legend {
		fmt.Fprintf(&b, "- %s = %s\n", e.Code, e.Label)
	}

	b.WriteString("\n## Summary\n\n```\n")
	b.WriteString(r.Summary.Grid(r.Header.Datasets))
	b.WriteString("```\n")

	b.WriteString("\n## Ranking\n\n")
	b.WriteString("| Net | Wins | Losses | Resultset |\n")
	b.WriteString("|----:|-----:|-------:|:----------|\n")
	for _, row := range r.Ranking {
		fmt.Fprintf(&b, "| %d | %d | %d | %s |\n", row.Diff, row.Wins, row.Losses, row.Label)
	}

	for _, ft := range r.FullTables {
		b.WriteString(renderFullTable(ft, r.Legend))
	}
	return b.String()
}

// renderFullTable renders one per-base table as Markdown
func renderFullTable(ft *compare.FullTable, legend []LegendEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n## Full table (base: %s, column: %s)\n\n", ft.BaseLabel, ft.ValueColumn)

	b.WriteString("| Dataset | Runs |")
	for i := range legend {
		fmt.Fprintf(&b, " %s |", legend[i].Code)
	}
	b.WriteString("\n|:--------|-----:|")
	for range legend {
		b.WriteString("----:|")
	}
	b.WriteString("\n")

	for _, row := range ft.Rows {
		fmt.Fprintf(&b, "| %s | %d |", row.Dataset, row.Runs)
		for _, cell := range row.Cells {
			if math.IsNaN(cell.Mean) {
				b.WriteString("   |")
				continue
			}
			marker := ""
			if cell.Marker == compare.MarkerWorse || cell.Marker == compare.MarkerBetter {
				marker = " " + string(cell.Marker)
			}
			fmt.Fprintf(&b, " %.2f%s |", cell.Mean, marker)
		}
		b.WriteString("\n")
	}

	b.WriteString("| (win/tie/loss) | |")
	for i, t := range ft.Tallies {
		if i == ft.Base {
			b.WriteString(" - |")
			continue
		}
		fmt.Fprintf(&b, " (%d/%d/%d) |", t.Wins, t.Ties, t.Losses)
	}
	b.WriteString("\n")

	if len(ft.Skipped) > 0 {
		fmt.Fprintf(&b, "\nSkipped datasets: %s\n", strings.Join(ft.Skipped, ", "))
	}
	return b.String()
}

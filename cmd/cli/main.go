package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"goexpt/adapters/postgres"
	"goexpt/adapters/stats"
	"goexpt/adapters/tabular"
	"goexpt/app"
	"goexpt/domain/compare"
	"goexpt/domain/table"
	"goexpt/internal"
	"goexpt/internal/errors"
	"goexpt/ports"
)

type options struct {
	resultsFile  string
	databaseURL  string
	resultsQuery string

	keyColumns   string
	datasetCol   int
	runCol       int
	valueCol     int
	significance float64
	labelPrefix  string
}

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "goexpt",
		Short: "Paired significance comparison of experiment results",
		Long: `goexpt compares result generators (algorithm configurations) across
datasets and repeated runs, producing paired significance tests,
win/loss summaries and rankings from a flat result table.`,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.resultsFile, "results", "", "result table file (.csv or .xlsx)")
	flags.StringVar(&opts.databaseURL, "db-url", "", "Postgres URL to load results from instead of a file")
	flags.StringVar(&opts.resultsQuery, "db-query", "", "query producing the flat result table")
	flags.StringVar(&opts.keyColumns, "key-cols", "first", "one-based key column range, e.g. \"1,3-5\"")
	flags.IntVar(&opts.datasetCol, "dataset-col", -1, "zero-based dataset column (-1 = last)")
	flags.IntVar(&opts.runCol, "run-col", -1, "zero-based run column (-1 = last)")
	flags.IntVar(&opts.valueCol, "value-col", -1, "zero-based comparison column (-1 = first numeric)")
	flags.Float64Var(&opts.significance, "significance", app.DefaultSignificance, "significance level in (0,1)")
	flags.StringVar(&opts.labelPrefix, "label-prefix", "", "common prefix stripped from resultset labels")

	rootCmd.AddCommand(
		newSummaryCmd(opts),
		newRankingCmd(opts),
		newFullTableCmd(opts),
		newReportCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the win matrix with a resultset legend",
		RunE: func(cmd *cobra.Command, args []string) error {
			comparator, valueCol, err := buildComparator(cmd.Context(), opts)
			if err != nil {
				return err
			}
			summary, err := comparator.Summary(valueCol)
			if err != nil {
				return err
			}
			fmt.Printf("Datasets: %d  Resultsets: %d  Significance: %g\n",
				comparator.DatasetCount(), comparator.ResultsetCount(), comparator.Significance())
			fmt.Printf("Comparisons: %d  Skipped: %d\n\n", summary.Matrix.Comparisons, summary.Matrix.Skipped)
			fmt.Print(summary.Grid(comparator.DatasetCount()))
			return nil
		},
	}
}

func newRankingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ranking",
		Short: "Print resultsets ordered by net significant wins",
		RunE: func(cmd *cobra.Command, args []string) error {
			comparator, valueCol, err := buildComparator(cmd.Context(), opts)
			if err != nil {
				return err
			}
			ranking, err := comparator.Ranking(valueCol)
			if err != nil {
				return err
			}
			fmt.Printf("%6s %6s %6s  %s\n", "net", "wins", "losses", "resultset")
			for _, row := range ranking {
				fmt.Printf("%6d %6d %6d  %s\n", row.Diff, row.Wins, row.Losses, row.Label)
			}
			return nil
		},
	}
}

func newFullTableCmd(opts *options) *cobra.Command {
	var base int
	cmd := &cobra.Command{
		Use:   "fulltable",
		Short: "Print per-dataset means with significance markers against a base resultset",
		RunE: func(cmd *cobra.Command, args []string) error {
			comparator, valueCol, err := buildComparator(cmd.Context(), opts)
			if err != nil {
				return err
			}
			ft, err := comparator.FullTable(base, valueCol)
			if err != nil {
				return err
			}
			printFullTable(ft, comparator.Labels())
			return nil
		},
	}
	cmd.Flags().IntVar(&base, "base", 0, "base resultset index")
	return cmd
}

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the complete comparison report as Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			comparator, valueCol, err := buildComparator(cmd.Context(), opts)
			if err != nil {
				return err
			}
			report, err := comparator.BuildReport(cmd.Context(), valueCol)
			if err != nil {
				return err
			}
			fmt.Print(report.Markdown())
			return nil
		},
	}
}

func printFullTable(ft *compare.FullTable, labels []string) {
	fmt.Printf("Base: %s  Column: %s\n\n", ft.BaseLabel, ft.ValueColumn)
	for _, row := range ft.Rows {
		fmt.Printf("%-20s (%d runs)", row.Dataset, row.Runs)
		for i, cell := range row.Cells {
			marker := ' '
			if cell.Marker != 0 {
				marker = cell.Marker
			}
			fmt.Printf("  [%d] %8.2f %c", i, cell.Mean, marker)
		}
		fmt.Println()
	}
	fmt.Println()
	for i, t := range ft.Tallies {
		if i == ft.Base {
			continue
		}
		fmt.Printf("%-40s (win/tie/loss): %d/%d/%d\n", labels[i], t.Wins, t.Ties, t.Losses)
	}
	if len(ft.Skipped) > 0 {
		fmt.Printf("Skipped datasets: %v\n", ft.Skipped)
	}
}

// buildComparator assembles source, tester and configuration
func buildComparator(ctx context.Context, opts *options) (*app.Comparator, int, error) {
	var source ports.TableSourcePort
	sourceName := "file"
	switch {
	case opts.resultsFile != "":
		source = tabular.NewDataReader(opts.resultsFile)
	case opts.databaseURL != "":
		if opts.resultsQuery == "" {
			return nil, 0, fmt.Errorf("--db-query is required with --db-url")
		}
		sourceName = "postgres"
		db, err := postgres.Open(opts.databaseURL)
		if err != nil {
			return nil, 0, err
		}
		source = postgres.NewResultRepository(db, opts.resultsQuery, "db_results")
	default:
		return nil, 0, fmt.Errorf("either --results or --db-url is required")
	}

	t, err := source.Load(ctx)
	if err != nil {
		return nil, 0, errors.SourceError(sourceName, err)
	}

	comparator := app.NewComparator(stats.NewPairedTTester(), internal.DefaultLogger)
	comparator.SetResultTable(t)
	comparator.SetKeyColumns(opts.keyColumns)
	comparator.SetDatasetColumn(columnOrLast(opts.datasetCol))
	comparator.SetRunColumn(columnOrLast(opts.runCol))
	comparator.SetSignificance(opts.significance)
	comparator.SetLabelPrefix(opts.labelPrefix)

	valueCol := opts.valueCol
	if valueCol < 0 {
		valueCol, err = firstNumericColumn(t, columnOrLast(opts.runCol), t.ColumnCount())
		if err != nil {
			return nil, 0, err
		}
	}
	return comparator, valueCol, nil
}

func columnOrLast(col int) int {
	if col < 0 {
		return compare.UseLastColumn
	}
	return col
}

// firstNumericColumn picks a default comparison column: the first
// numeric column that is not the run column.
func firstNumericColumn(t *table.Table, runCol, columnCount int) (int, error) {
	if runCol == compare.UseLastColumn {
		runCol = columnCount - 1
	}
	for col := 0; col < t.ColumnCount(); col++ {
		if col == runCol {
			continue
		}
		c, err := t.Column(col)
		if err != nil {
			return 0, err
		}
		if c.Kind == table.Numeric {
			return col, nil
		}
	}
	return 0, fmt.Errorf("no numeric column available for comparison; use --value-col")
}

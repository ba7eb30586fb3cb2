package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"goexpt/adapters/postgres"
	"goexpt/adapters/stats"
	"goexpt/adapters/tabular"
	"goexpt/app"
	"goexpt/domain/table"
	"goexpt/internal"
	"goexpt/internal/config"
	"goexpt/internal/errors"
	"goexpt/ports"
	"goexpt/ui"
)

func main() {
	_ = godotenv.Load()

	logger := internal.DefaultLogger
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	var source ports.TableSourcePort
	sourceName := "file"
	switch {
	case cfg.Data.ResultsFile != "":
		source = tabular.NewDataReader(cfg.Data.ResultsFile)
	case cfg.Database.URL != "":
		sourceName = "postgres"
		db, err := postgres.Open(cfg.Database.URL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "database error: %v\n", err)
			os.Exit(1)
		}
		source = postgres.NewResultRepository(db, cfg.Database.Query, "db_results")
	default:
		fmt.Fprintln(os.Stderr, "set RESULTS_FILE or DATABASE_URL")
		os.Exit(1)
	}

	t, err := source.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", errors.SourceError(sourceName, err))
		os.Exit(1)
	}
	logger.Info("loaded result table %q: %d columns, %d rows", t.Name, t.ColumnCount(), t.RowCount())

	comparator := app.NewComparator(stats.NewPairedTTester(), logger)
	comparator.SetResultTable(t)
	comparator.SetKeyColumns(cfg.Data.KeyColumns)
	comparator.SetDatasetColumn(cfg.Data.DatasetColumn)
	comparator.SetRunColumn(cfg.Data.RunColumn)
	comparator.SetSignificance(cfg.Data.Significance)
	comparator.SetLabelPrefix(cfg.Data.LabelPrefix)

	valueCol := cfg.Data.ValueColumn
	if valueCol < 0 {
		valueCol = defaultValueColumn(t)
		if valueCol < 0 {
			fmt.Fprintln(os.Stderr, "no numeric column available; set VALUE_COLUMN")
			os.Exit(1)
		}
	}

	server := ui.NewApp(ui.Config{Port: cfg.Server.Port, ValueColumn: valueCol}, comparator, logger)
	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// defaultValueColumn picks the first numeric column that is not the last
// column (the last column defaults to run/dataset duty).
func defaultValueColumn(t *table.Table) int {
	for col := 0; col < t.ColumnCount()-1; col++ {
		c, err := t.Column(col)
		if err != nil {
			return -1
		}
		if c.Kind == table.Numeric {
			return col
		}
	}
	return -1
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"goexpt/domain/table"
	"goexpt/internal/errors"
)

// ResultRepository materializes a flat result table from a database
// query. Every row of the query becomes one result row; numeric columns
// stay numeric, everything else becomes a nominal column with a
// first-appearance domain. NULLs become missing values.
type ResultRepository struct {
	db    *sqlx.DB
	query string
	name  string
}

// NewResultRepository creates a repository over db that loads the given
// query. It satisfies ports.TableSourcePort.
func NewResultRepository(db *sqlx.DB, query, name string) *ResultRepository {
	return &ResultRepository{db: db, query: query, name: name}
}

// Open connects to a Postgres database by URL
func Open(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return db, nil
}

// Load runs the query and converts the rows into a result table
func (r *ResultRepository) Load(ctx context.Context) (*table.Table, error) {
	rows, err := r.db.QueryxContext(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("result query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var raw [][]interface{}
	for rows.Next() {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		raw = append(raw, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result query failed: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("result query returned no rows")
	}

	columns := make([]table.Column, len(names))
	domains := make([][]string, len(names))
	for col, name := range names {
		numeric := true
		seen := make(map[string]bool)
		for _, row := range raw {
			v := row[col]
			if v == nil {
				continue
			}
			if _, ok := asNumber(v); !ok {
				numeric = false
				s := asString(v)
				if !seen[s] {
					seen[s] = true
					domains[col] = append(domains[col], s)
				}
			}
		}
		if numeric {
			columns[col] = table.NumericColumn(name)
		} else {
			// Re-collect the domain including values that looked numeric
			// before the column was settled as nominal.
			domains[col] = nominalDomain(raw, col)
			columns[col] = table.NominalColumn(name, domains[col]...)
		}
	}

	t := table.New(r.name, columns)
	for _, row := range raw {
		cells := make([]float64, len(columns))
		for col := range columns {
			v := row[col]
			if v == nil {
				cells[col] = table.Missing()
				continue
			}
			if columns[col].Kind == table.Numeric {
				n, _ := asNumber(v)
				cells[col] = n
				continue
			}
			idx, ok := t.NominalIndex(col, asString(v))
			if !ok {
				return nil, fmt.Errorf("column %q: value %q not in domain", columns[col].Name, asString(v))
			}
			cells[col] = idx
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// nominalDomain collects the distinct string forms of a column in
// first-appearance order.
func nominalDomain(raw [][]interface{}, col int) []string {
	seen := make(map[string]bool)
	var domain []string
	for _, row := range raw {
		if row[col] == nil {
			continue
		}
		s := asString(row[col])
		if !seen[s] {
			seen[s] = true
			domain = append(domain, s)
		}
	}
	return domain
}

// asNumber converts the driver value to float64 when it is numeric
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// asString renders the driver value the way it appears in the table
func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

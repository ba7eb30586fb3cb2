package ports

import (
	"context"

	"goexpt/domain/table"
)

// TableSourcePort supplies a result table from an external source
// (result file, database query). The core consumes the table; it never
// produces one.
type TableSourcePort interface {
	Load(ctx context.Context) (*table.Table, error)
}

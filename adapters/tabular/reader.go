package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"goexpt/domain/table"
)

// DataReader loads a result table from an Excel or CSV file. The first
// row is the header; every other row is one result row. Column types are
// inferred: a column whose every non-missing cell parses as a number is
// numeric, anything else is nominal with a first-appearance domain.
// Empty cells and "?" are missing values.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given .xlsx or .csv file
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Load reads the file into a result table. It satisfies
// ports.TableSourcePort.
func (r *DataReader) Load(ctx context.Context) (*table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("result file not found: %s", r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("result file must have a header row and at least one data row")
	}
	return buildTable(filepath.Base(r.filePath), rows[0], rows[1:])
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// buildTable infers column types from the raw string rows and converts
// them into a typed result table.
func buildTable(name string, header []string, raw [][]string) (*table.Table, error) {
	columns := make([]table.Column, len(header))
	for col, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", col+1)
		}
		if numeric, domain := inferColumn(raw, col); numeric {
			columns[col] = table.NumericColumn(h)
		} else {
			columns[col] = table.NominalColumn(h, domain...)
		}
	}

	t := table.New(name, columns)
	for rowIdx, row := range raw {
		cells := make([]float64, len(columns))
		for col := range columns {
			s := cellAt(row, col)
			if isMissingCell(s) {
				cells[col] = table.Missing()
				continue
			}
			if columns[col].Kind == table.Numeric {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %q: %q is not numeric", rowIdx+2, columns[col].Name, s)
				}
				cells[col] = v
				continue
			}
			idx, ok := t.NominalIndex(col, s)
			if !ok {
				return nil, fmt.Errorf("row %d, column %q: %q not in inferred domain", rowIdx+2, columns[col].Name, s)
			}
			cells[col] = idx
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx+2, err)
		}
	}
	return t, nil
}

// inferColumn decides numeric vs nominal for one column and collects the
// nominal domain in first-appearance order.
func inferColumn(raw [][]string, col int) (numeric bool, domain []string) {
	numeric = true
	seen := make(map[string]bool)
	nonMissing := 0
	for _, row := range raw {
		s := cellAt(row, col)
		if isMissingCell(s) {
			continue
		}
		nonMissing++
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			numeric = false
		}
		if !seen[s] {
			seen[s] = true
			domain = append(domain, s)
		}
	}
	// A fully missing column stays nominal with an empty domain.
	if nonMissing == 0 {
		numeric = false
	}
	if numeric {
		domain = nil
	}
	return numeric, domain
}

// cellAt tolerates the ragged rows excelize produces for trailing blanks
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isMissingCell(s string) bool {
	return s == "" || s == "?"
}

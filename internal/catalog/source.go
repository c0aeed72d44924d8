package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Column headers of the price sheet.
const (
	ColumnCategory      = "COMPONENTES"
	ColumnSpecification = "ESPECIFICACIONES TECNICAS"
	ColumnCost          = "COSTOS"
)

// OpenFile returns the Source for a spreadsheet or CSV file, chosen by
// extension. sheet only applies to spreadsheets; empty means the first sheet.
func OpenFile(path, sheet string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("stat catalog source: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVSource{Path: path}, nil
	case ".xlsx", ".xlsm":
		return XLSXSource{Path: path, Sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("unsupported catalog file type %q", filepath.Ext(path))
	}
}

type columnIndex struct {
	category, specification, cost int
}

func resolveColumns(header []string) (columnIndex, error) {
	idx := columnIndex{category: -1, specification: -1, cost: -1}
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch {
		case strings.EqualFold(name, ColumnCategory):
			idx.category = i
		case strings.EqualFold(name, ColumnSpecification):
			idx.specification = i
		case strings.EqualFold(name, ColumnCost):
			idx.cost = i
		}
	}

	switch {
	case idx.category < 0:
		return idx, fmt.Errorf("%s: %w", ColumnCategory, ErrMissingColumn)
	case idx.specification < 0:
		return idx, fmt.Errorf("%s: %w", ColumnSpecification, ErrMissingColumn)
	case idx.cost < 0:
		return idx, fmt.Errorf("%s: %w", ColumnCost, ErrMissingColumn)
	}
	return idx, nil
}

func (c columnIndex) row(record []string) RawRow {
	return RawRow{
		Category:      cell(record, c.category),
		Specification: cell(record, c.specification),
		Cost:          cell(record, c.cost),
	}
}

// cell tolerates short records: trailing empty cells are often omitted.
func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func rowsFrom(records [][]string) ([]RawRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty sheet: %w", ErrMissingColumn)
	}
	idx, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, idx.row(record))
	}
	return rows, nil
}

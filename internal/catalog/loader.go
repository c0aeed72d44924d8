// Package catalog turns the component price sheet into an indexed catalog of
// options and prices per component category.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrSourceNotFound is returned when the catalog source does not exist.
	ErrSourceNotFound = errors.New("catalog source not found")
	// ErrMissingColumn is returned when a tabular source lacks a required column.
	ErrMissingColumn = errors.New("catalog source missing required column")
)

// RawRow is one row as read from the source. Blank fields are missing cells.
type RawRow struct {
	Category      string
	Specification string
	Cost          string
}

// Row is a cleaned catalog record.
type Row struct {
	Category      string
	Specification string
	Cost          decimal.Decimal
}

// Source yields raw catalog rows in sheet order.
type Source interface {
	ReadRows(ctx context.Context) ([]RawRow, error)
}

// Load reads src once and builds the catalog for categories.
func Load(ctx context.Context, src Source, categories []Category) (*Catalog, error) {
	raw, err := src.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog rows: %w", err)
	}
	return Build(Normalize(raw), categories), nil
}

// Normalize forward-fills blank categories and drops rows without a usable
// specification or cost. Rows before the first labelled row are dropped.
func Normalize(raw []RawRow) []Row {
	rows := make([]Row, 0, len(raw))
	current := ""
	for _, r := range raw {
		if label := strings.TrimSpace(r.Category); label != "" {
			current = label
		}
		if current == "" {
			continue
		}

		spec := strings.TrimSpace(r.Specification)
		if spec == "" {
			continue
		}
		cost, ok := parseCost(r.Cost)
		if !ok {
			continue
		}

		rows = append(rows, Row{Category: current, Specification: spec, Cost: cost})
	}
	return rows
}

func parseCost(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil || cost.IsNegative() {
		return decimal.Zero, false
	}
	return cost, true
}

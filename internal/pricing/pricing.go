package pricing

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/finesi/internal/catalog"
)

// ErrSelectionIncomplete marks a selection that skips a category with options.
var ErrSelectionIncomplete = errors.New("selection incomplete")

// IncompleteSelectionError lists the categories a selection failed to fill.
type IncompleteSelectionError struct {
	Missing []string
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("selection incomplete: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteSelectionError) Is(target error) bool {
	return target == ErrSelectionIncomplete
}

// Catalog is the read side of the component catalog needed for pricing.
type Catalog interface {
	Categories() []string
	OptionsFor(category string) []string
	PriceOf(category, specification string) decimal.Decimal
}

// LineItem is the priced choice for one category.
type LineItem struct {
	Category      string          `json:"category"`
	Specification string          `json:"specification"`
	Cost          decimal.Decimal `json:"cost"`
}

// Result groups the priced line items and their total.
type Result struct {
	LineItems []LineItem      `json:"line_items"`
	Total     decimal.Decimal `json:"total"`
}

// Calculate prices a complete selection against the catalog.
//
// Every category that has options must be selected; otherwise an
// *IncompleteSelectionError is returned. A specification the catalog does not
// know is priced at zero.
func Calculate(c Catalog, sel catalog.Selection) (Result, error) {
	categories := c.Categories()

	var missing []string
	for _, category := range categories {
		if _, ok := sel[category]; !ok && len(c.OptionsFor(category)) > 0 {
			missing = append(missing, category)
		}
	}
	if len(missing) > 0 {
		return Result{}, &IncompleteSelectionError{Missing: missing}
	}

	order := make([]string, 0, len(sel))
	for _, category := range categories {
		if _, ok := sel[category]; ok {
			order = append(order, category)
		}
	}
	var extra []string
	for category := range sel {
		if !slices.Contains(categories, category) {
			extra = append(extra, category)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	result := Result{LineItems: make([]LineItem, 0, len(order)), Total: decimal.Zero}
	for _, category := range order {
		spec := sel[category]
		cost := c.PriceOf(category, spec)
		result.LineItems = append(result.LineItems, LineItem{
			Category:      category,
			Specification: spec,
			Cost:          cost,
		})
		result.Total = result.Total.Add(cost)
	}

	return result, nil
}

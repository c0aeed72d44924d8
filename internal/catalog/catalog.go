package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category maps raw spreadsheet labels onto one canonical component slot.
// A raw label belongs to the category when it contains Match (case-sensitive).
type Category struct {
	Key   string
	Match string
}

// DefaultCategories is the component mapping of the FINESI price sheet, in
// declaration order.
var DefaultCategories = []Category{
	{Key: "MB", Match: "MOTHERBOARD"},
	{Key: "COOLER", Match: "COOLER"},
	{Key: "CPU", Match: "CPU"},
	{Key: "DISCO DURO", Match: "DISCO DURO"},
	{Key: "MEM DDR", Match: "MEM DDR"},
	{Key: "MONITOR", Match: "MONITOR"},
	{Key: "MOUSE", Match: "MOUSE"},
	{Key: "SSD", Match: "SSD"},
	{Key: "TECLADO", Match: "TECLADO"},
	{Key: "TARJETA DE VIDEO", Match: "TARJETA DE VIDEO"},
}

// Selection holds the chosen specification per canonical category.
type Selection map[string]string

// Get returns the specification chosen for category, or "" when none was chosen.
func (s Selection) Get(category string) string {
	return s[category]
}

// Catalog is the queryable index of options and prices per category.
// It is never mutated after Build and is safe for concurrent reads.
type Catalog struct {
	keys    []string
	options map[string][]string
	prices  map[string]map[string]decimal.Decimal
}

// Build indexes normalized rows under the given categories.
//
// Every declared key gets an entry, even when no row matched it. Options keep
// source order and duplicates; when a specification repeats inside a category
// the later cost wins. A row whose label satisfies several matchers is indexed
// under each of them.
func Build(rows []Row, categories []Category) *Catalog {
	c := &Catalog{
		options: make(map[string][]string, len(categories)),
		prices:  make(map[string]map[string]decimal.Decimal, len(categories)),
	}

	for _, cat := range categories {
		if _, seen := c.prices[cat.Key]; seen {
			continue
		}
		c.keys = append(c.keys, cat.Key)
		c.options[cat.Key] = []string{}
		c.prices[cat.Key] = map[string]decimal.Decimal{}
	}

	for _, cat := range categories {
		if cat.Match == "" {
			continue
		}
		for _, row := range rows {
			if !strings.Contains(row.Category, cat.Match) {
				continue
			}
			c.options[cat.Key] = append(c.options[cat.Key], row.Specification)
			c.prices[cat.Key][row.Specification] = row.Cost
		}
	}

	return c
}

// Categories returns the canonical keys in declaration order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.keys...)
}

// OptionsFor returns the ordered options of category. Unknown categories yield
// an empty slice.
func (c *Catalog) OptionsFor(category string) []string {
	return append([]string{}, c.options[category]...)
}

// PriceOf returns the cost of specification within category, or zero when the
// pair is not in the catalog.
func (c *Catalog) PriceOf(category, specification string) decimal.Decimal {
	price, ok := c.prices[category][specification]
	if !ok {
		return decimal.Zero
	}
	return price
}

// DefaultSelection picks the first option of every category that has one.
func (c *Catalog) DefaultSelection() Selection {
	sel := make(Selection, len(c.keys))
	for _, key := range c.keys {
		if opts := c.options[key]; len(opts) > 0 {
			sel[key] = opts[0]
		}
	}
	return sel
}

// Len reports how many options are indexed across all categories.
func (c *Catalog) Len() int {
	n := 0
	for _, opts := range c.options {
		n += len(opts)
	}
	return n
}

package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/Simplici0/finesi/internal/advisor"
	"github.com/Simplici0/finesi/internal/app"
	"github.com/Simplici0/finesi/internal/catalog"
	"github.com/Simplici0/finesi/internal/pricing"
)

// =============================================================================
// IMPORT COMMAND
// =============================================================================

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Copy a price sheet into the SQLite catalog database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "Price sheet to import (.xlsx or .csv); defaults to the configured catalog path",
			},
		},
		Action: runImport,
	}
}

func runImport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := c.String("from")
	if path == "" {
		path = cfg.Catalog.Path
	}

	stats, err := app.ImportFile(c.Context, cfg, path)
	if err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Catálogo importado en %s: %d filas nuevas, %d eliminadas\n",
		cfg.DBPath, stats.Inserts, stats.Deletes)
	return nil
}

// =============================================================================
// OPTIONS COMMAND
// =============================================================================

func optionsCommand() *cli.Command {
	return &cli.Command{
		Name:   "options",
		Usage:  "List every category with its options and prices",
		Action: runOptions,
	}
}

func runOptions(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cat, err := app.LoadCatalog(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	w := c.App.Writer
	for _, key := range cat.Categories() {
		fmt.Fprintf(w, "%s:\n", key)
		options := cat.OptionsFor(key)
		if len(options) == 0 {
			fmt.Fprintln(w, "  (sin opciones)")
			continue
		}
		for _, spec := range options {
			fmt.Fprintf(w, "  - %s  $%s\n", spec, cat.PriceOf(key, spec).StringFixed(2))
		}
	}
	return nil
}

// =============================================================================
// QUOTE COMMAND
// =============================================================================

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Price a build and list upgrade recommendations",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "pick",
				Aliases: []string{"p"},
				Usage:   "CATEGORY=SPECIFICATION; categories not picked use their first option",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "Output format (text, json)",
			},
		},
		Action: runQuote,
	}
}

type quoteOutput struct {
	LineItems  []pricing.LineItem `json:"line_items"`
	Total      decimal.Decimal    `json:"total"`
	Advisories []advisor.Advisory `json:"advisories"`
}

func runQuote(c *cli.Context) error {
	format := c.String("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cat, err := app.LoadCatalog(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	adv, err := app.NewAdvisor(cfg)
	if err != nil {
		return err
	}

	sel, err := applyPicks(cat, c.StringSlice("pick"))
	if err != nil {
		return err
	}

	result, err := pricing.Calculate(cat, sel)
	if err != nil {
		return fmt.Errorf("price selection: %w", err)
	}
	out := quoteOutput{
		LineItems:  result.LineItems,
		Total:      result.Total,
		Advisories: adv.Recommend(sel),
	}

	if format == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printQuote(c, out)
	return nil
}

// applyPicks starts from the first option of every category and overrides the
// categories named in picks.
func applyPicks(cat *catalog.Catalog, picks []string) (catalog.Selection, error) {
	sel := cat.DefaultSelection()
	categories := cat.Categories()

	for _, pick := range picks {
		key, spec, ok := strings.Cut(pick, "=")
		key = strings.TrimSpace(key)
		spec = strings.TrimSpace(spec)
		if !ok || key == "" || spec == "" {
			return nil, fmt.Errorf("invalid --pick %q (want CATEGORY=SPECIFICATION)", pick)
		}
		if !slices.Contains(categories, key) {
			return nil, fmt.Errorf("unknown category %q (have %s)", key, strings.Join(categories, ", "))
		}
		sel[key] = spec
	}
	return sel, nil
}

func printQuote(c *cli.Context, out quoteOutput) {
	w := c.App.Writer

	for _, item := range out.LineItems {
		fmt.Fprintf(w, "%-18s %-40s $%s\n", item.Category+":", item.Specification, item.Cost.StringFixed(2))
	}
	fmt.Fprintf(w, "\nTotal: $%s\n\n", out.Total.StringFixed(2))

	if len(out.Advisories) == 0 {
		fmt.Fprintln(w, "No hay recomendaciones adicionales.")
		return
	}
	fmt.Fprintln(w, "Recomendaciones:")
	for _, a := range out.Advisories {
		fmt.Fprintf(w, "- %s: %s\n  %s\n", a.Title, a.Detail, a.Link)
	}
}

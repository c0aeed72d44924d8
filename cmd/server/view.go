package main

import (
	"embed"
	"html/template"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/finesi/internal/advisor"
	"github.com/Simplici0/finesi/internal/assets"
	"github.com/Simplici0/finesi/internal/catalog"
	"github.com/Simplici0/finesi/internal/config"
	"github.com/Simplici0/finesi/internal/pricing"
)

//go:embed templates/*.html
var templatesFS embed.FS

var hundred = decimal.NewFromInt(100)

type headerView struct {
	Logo  template.URL
	Badge template.URL
}

// Ready reports whether both images loaded; the header is drawn only then.
func (h headerView) Ready() bool {
	return h.Logo != "" && h.Badge != ""
}

type optionView struct {
	Value    string
	Selected bool
}

type categoryView struct {
	Key     string
	Options []optionView
}

type lineItemView struct {
	Category      string
	Specification string
	Price         string
}

type barView struct {
	Category string
	Price    string
	Style    template.CSS
}

type buildViewData struct {
	Header     headerView
	Categories []categoryView
	LineItems  []lineItemView
	Total      string
	Advisories []advisor.Advisory
	Chart      []barView
}

func loadHeader(cfg config.AssetsConfig) headerView {
	return headerView{
		Logo:  loadImage(cfg.LogoPath),
		Badge: loadImage(cfg.BadgePath),
	}
}

func loadImage(path string) template.URL {
	encoded, err := assets.LoadBase64(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("header image unavailable")
		return ""
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/png"
	}
	return template.URL("data:" + mimeType + ";base64," + encoded)
}

func newBuildView(c *catalog.Catalog, sel catalog.Selection, result pricing.Result, advisories []advisor.Advisory, header headerView) buildViewData {
	view := buildViewData{
		Header:     header,
		Total:      money(result.Total),
		Advisories: advisories,
	}

	for _, key := range c.Categories() {
		cv := categoryView{Key: key}
		chosen, done := sel.Get(key), false
		for _, opt := range c.OptionsFor(key) {
			// Repeated specifications keep one selected entry.
			selected := !done && opt == chosen
			done = done || selected
			cv.Options = append(cv.Options, optionView{Value: opt, Selected: selected})
		}
		view.Categories = append(view.Categories, cv)
	}

	maxCost := decimal.Zero
	for _, item := range result.LineItems {
		maxCost = decimal.Max(maxCost, item.Cost)
	}
	for _, item := range result.LineItems {
		price := money(item.Cost)
		view.LineItems = append(view.LineItems, lineItemView{
			Category:      item.Category,
			Specification: item.Specification,
			Price:         price,
		})

		width := decimal.Zero
		if maxCost.IsPositive() {
			width = item.Cost.Mul(hundred).Div(maxCost)
		}
		view.Chart = append(view.Chart, barView{
			Category: item.Category,
			Price:    price,
			Style:    template.CSS("width: " + width.StringFixed(2) + "%"),
		})
	}

	return view
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFS(templatesFS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("render template")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

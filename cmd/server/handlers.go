package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/finesi/internal/advisor"
	"github.com/Simplici0/finesi/internal/catalog"
	"github.com/Simplici0/finesi/internal/pricing"
)

type catalogOption struct {
	Specification string          `json:"specification"`
	Cost          decimal.Decimal `json:"cost"`
}

type catalogCategory struct {
	Key     string          `json:"key"`
	Options []catalogOption `json:"options"`
}

type quoteRequest struct {
	Selection catalog.Selection `json:"selection"`
}

type quoteResponse struct {
	QuoteID    string             `json:"quote_id"`
	LineItems  []pricing.LineItem `json:"line_items"`
	Total      decimal.Decimal    `json:"total"`
	Advisories []advisor.Advisory `json:"advisories"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func (s *server) handleBuild(w http.ResponseWriter, r *http.Request) {
	sel := s.selectionFrom(r.URL.Query())

	result, err := pricing.Calculate(s.catalog, sel)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("price form selection")
		http.Error(w, "failed to price selection", http.StatusInternalServerError)
		return
	}

	advisories := s.advisor.Recommend(sel)
	s.renderTemplate(w, "build.html", newBuildView(s.catalog, sel, result, advisories, s.header))
}

// selectionFrom completes the query with the first option of every category
// left blank, the way the form preselects them.
func (s *server) selectionFrom(q url.Values) catalog.Selection {
	sel := catalog.Selection{}
	for _, key := range s.catalog.Categories() {
		options := s.catalog.OptionsFor(key)
		if len(options) == 0 {
			continue
		}
		if v := q.Get(key); v != "" {
			sel[key] = v
			continue
		}
		sel[key] = options[0]
	}
	return sel
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	categories := make([]catalogCategory, 0)
	for _, key := range s.catalog.Categories() {
		cat := catalogCategory{Key: key, Options: []catalogOption{}}
		for _, spec := range s.catalog.OptionsFor(key) {
			cat.Options = append(cat.Options, catalogOption{
				Specification: spec,
				Cost:          s.catalog.PriceOf(key, spec),
			})
		}
		categories = append(categories, cat)
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
		})
		return
	}

	result, err := pricing.Calculate(s.catalog, req.Selection)
	if err != nil {
		var incomplete *pricing.IncompleteSelectionError
		if errors.As(err, &incomplete) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:   "selection_incomplete",
				Message: err.Error(),
				Missing: incomplete.Missing,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "pricing_failed",
			Message: err.Error(),
		})
		return
	}

	resp := quoteResponse{
		QuoteID:    uuid.NewString(),
		LineItems:  result.LineItems,
		Total:      result.Total,
		Advisories: s.advisor.Recommend(req.Selection),
	}
	hlog.FromRequest(r).Info().
		Str("quote_id", resp.QuoteID).
		Str("total", resp.Total.StringFixed(2)).
		Int("advisories", len(resp.Advisories)).
		Msg("quote priced")

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"options": s.catalog.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

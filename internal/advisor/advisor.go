// Package advisor suggests upgrades for a selected build from a fixed list of
// text rules.
package advisor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/finesi/internal/catalog"
)

// Advisory is one suggestion shown to the user.
type Advisory struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Link   string `json:"link"`
}

// Rule emits Advisory when the specification chosen for Category contains
// Contains. Matching is case-sensitive.
type Rule struct {
	Category string
	Contains string
	Advisory Advisory
}

// DefaultRules are evaluated in this order.
var DefaultRules = []Rule{
	{
		Category: "CPU",
		Contains: "i7",
		Advisory: Advisory{
			Title:  "Mejora de almacenamiento",
			Detail: "Considera aumentar la capacidad del SSD para mejorar el rendimiento general de tu sistema, especialmente si ejecutas tareas exigentes.",
			Link:   "https://www.techradar.com/best/best-ssd",
		},
	},
	{
		Category: "CPU",
		Contains: "Ryzen 9",
		Advisory: Advisory{
			Title:  "Enfriamiento necesario",
			Detail: "El Ryzen 9 es un procesador de alto rendimiento. Asegúrate de tener un buen sistema de enfriamiento para mantener temperaturas estables.",
			Link:   "https://www.tomshardware.com/reviews/best-cpu-coolers,4181.html",
		},
	},
	{
		Category: "TARJETA DE VIDEO",
		Contains: "RTX 3080",
		Advisory: Advisory{
			Title:  "Monitor adecuado",
			Detail: "Un monitor de alta resolución complementará bien tu tarjeta gráfica RTX 3080. Esto te permitirá aprovechar al máximo su potencia gráfica.",
			Link:   "https://www.pcgamer.com/best-4k-monitors-for-gaming/",
		},
	},
	{
		Category: "MEM DDR",
		Contains: "16GB",
		Advisory: Advisory{
			Title:  "Aumenta la memoria RAM",
			Detail: "Para tareas intensivas como edición de video o juegos, considera aumentar la memoria RAM a 32GB para mejorar el rendimiento.",
			Link:   "https://www.techadvisor.com/buying-advice/pc-components/how-much-ram-do-you-need-3697201/",
		},
	},
}

var errInvalidRule = errors.New("invalid advisory rule")

// Engine evaluates rules against selections. It holds no mutable state.
type Engine struct {
	rules []Rule
}

// New validates rules and returns an Engine that evaluates them in order.
func New(rules []Rule) (*Engine, error) {
	for i, r := range rules {
		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("rule %d: empty category: %w", i, errInvalidRule)
		}
		if r.Contains == "" {
			return nil, fmt.Errorf("rule %d (%s): empty match text: %w", i, r.Category, errInvalidRule)
		}
	}
	return &Engine{rules: append([]Rule(nil), rules...)}, nil
}

// Recommend returns the advisories whose rule matches sel, in rule order.
// Categories missing from sel never match.
func (e *Engine) Recommend(sel catalog.Selection) []Advisory {
	out := []Advisory{}
	for _, r := range e.rules {
		if strings.Contains(sel.Get(r.Category), r.Contains) {
			out = append(out, r.Advisory)
		}
	}
	return out
}

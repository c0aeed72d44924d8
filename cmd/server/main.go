package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/Simplici0/finesi/internal/advisor"
	"github.com/Simplici0/finesi/internal/app"
	"github.com/Simplici0/finesi/internal/catalog"
	"github.com/Simplici0/finesi/internal/config"
	"github.com/Simplici0/finesi/internal/logging"
)

type server struct {
	catalog *catalog.Catalog
	advisor *advisor.Engine
	header  headerView
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.IsDev())

	ctx := context.Background()
	cat, err := app.LoadCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}

	adv, err := app.NewAdvisor(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build advisor")
	}

	srv := &server{
		catalog: cat,
		advisor: adv,
		header:  loadHeader(cfg.Assets),
	}

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Get("/", s.handleBuild)
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/quote", s.handleQuote)
	})
	return r
}

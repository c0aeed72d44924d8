// Package app wires configuration into the catalog, the catalog store and the
// advisor. Both the web server and the CLI start from here.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Simplici0/finesi/internal/advisor"
	"github.com/Simplici0/finesi/internal/catalog"
	"github.com/Simplici0/finesi/internal/catalogstore"
	"github.com/Simplici0/finesi/internal/config"
	"github.com/Simplici0/finesi/internal/db"
	"github.com/Simplici0/finesi/internal/migrations"
)

// LoadCatalog builds the catalog from the source selected in cfg.
func LoadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	switch cfg.Catalog.Source {
	case config.SourceSQLite:
		c, err = loadFromStore(ctx, cfg)
	default:
		c, err = loadFromFile(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", cfg.Catalog.Source).
		Int("categories", len(c.Categories())).
		Int("options", c.Len()).
		Msg("catalog loaded")
	return c, nil
}

func loadFromFile(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	src, err := catalog.OpenFile(cfg.Catalog.Path, cfg.Catalog.Sheet)
	if err != nil {
		return nil, err
	}
	return catalog.Load(ctx, src, cfg.Categories())
}

func loadFromStore(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	if _, err := os.Stat(cfg.DBPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", cfg.DBPath, catalog.ErrSourceNotFound)
	}

	database, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	return catalog.Load(ctx, catalogstore.Source{DB: database}, cfg.Categories())
}

// NewAdvisor builds the recommendation engine from the configured rules.
func NewAdvisor(cfg config.Config) (*advisor.Engine, error) {
	engine, err := advisor.New(cfg.Rules())
	if err != nil {
		return nil, fmt.Errorf("build advisor: %w", err)
	}
	return engine, nil
}

// ImportFile copies the rows of a spreadsheet or CSV file into the catalog
// store at cfg.DBPath.
func ImportFile(ctx context.Context, cfg config.Config, path string) (catalogstore.Stats, error) {
	src, err := catalog.OpenFile(path, cfg.Catalog.Sheet)
	if err != nil {
		return catalogstore.Stats{}, err
	}
	rows, err := src.ReadRows(ctx)
	if err != nil {
		return catalogstore.Stats{}, fmt.Errorf("read %s: %w", path, err)
	}

	database, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return catalogstore.Stats{}, err
	}
	defer database.Close()

	stats, err := catalogstore.Import(ctx, database, rows)
	if err != nil {
		return catalogstore.Stats{}, err
	}

	log.Info().
		Str("file", path).
		Str("db", cfg.DBPath).
		Int("rows", len(rows)).
		Int("inserts", stats.Inserts).
		Int("deletes", stats.Deletes).
		Msg("catalog imported")
	return stats, nil
}

func openStore(ctx context.Context, path string) (*sql.DB, error) {
	database, err := db.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Command finesi imports the component price sheet and quotes builds from the
// terminal.
//
// Usage:
//
//	finesi import --from DATOS.xlsx
//	finesi options
//	finesi quote --pick "CPU=Intel i7-12700K" --format json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/Simplici0/finesi/internal/config"
	"github.com/Simplici0/finesi/internal/logging"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "finesi",
		Usage:     "Arma tu PC: catálogo de componentes, costos y recomendaciones",
		Version:   version,
		Writer:    out,
		ErrWriter: os.Stderr,
		// Specifications routinely contain commas.
		DisableSliceFlagSeparator: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a YAML configuration file",
				EnvVars: []string{"FINESI_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "SQLite catalog database path",
				EnvVars: []string{"DB_PATH"},
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Price sheet path (.xlsx or .csv)",
				EnvVars: []string{"CATALOG_PATH"},
			},
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Catalog source: file or sqlite",
				EnvVars: []string{"CATALOG_SOURCE"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel, true)
			return nil
		},

		Commands: []*cli.Command{
			importCommand(),
			optionsCommand(),
			quoteCommand(),
		},
	}
}

// loadConfig resolves configuration the same way the server does, then
// applies global flags on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	if err := config.LoadEnvFile(config.DotEnvPath); err != nil {
		log.Warn().Err(err).Str("path", config.DotEnvPath).Msg("config: cannot read dotenv file")
	}
	cfg := config.LoadFrom(c.String("config"))

	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("db"); v != "" {
		cfg.DBPath = v
	}
	if v := c.String("catalog"); v != "" {
		cfg.Catalog.Path = v
	}
	switch v := c.String("source"); v {
	case "":
	case config.SourceFile, config.SourceSQLite:
		cfg.Catalog.Source = v
	default:
		return cfg, fmt.Errorf("unknown catalog source %q (want %s or %s)", v, config.SourceFile, config.SourceSQLite)
	}
	return cfg, nil
}

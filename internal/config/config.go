package config

import (
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/finesi/internal/advisor"
	"github.com/Simplici0/finesi/internal/catalog"
)

const (
	defaultCatalogPath = "DATOS.xlsx"
	defaultLogoPath    = "images.png"
	defaultBadgePath   = "raven.jpg"
	defaultDBPath      = "./dev.db"
	defaultPort        = "8080"
	defaultEnv         = "dev"
	defaultLogLevel    = "info"

	configPathEnv = "FINESI_CONFIG"

	// DotEnvPath is the dotenv file read by Load.
	DotEnvPath = ".env"
)

// Catalog source kinds.
const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
)

// Config holds application configuration sourced from an optional YAML file
// and environment variables.
type Config struct {
	Env        string           `yaml:"env"`
	Port       string           `yaml:"port"`
	DBPath     string           `yaml:"dbPath"`
	LogLevel   string           `yaml:"logLevel"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Assets     AssetsConfig     `yaml:"assets"`
	Advisories []AdvisoryConfig `yaml:"advisories"`
}

// CatalogConfig describes where the price sheet lives and how its labels map
// to component categories.
type CatalogConfig struct {
	Path       string           `yaml:"path"`
	Sheet      string           `yaml:"sheet"`
	Source     string           `yaml:"source"`
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig is one label matcher.
type CategoryConfig struct {
	Key   string `yaml:"key"`
	Match string `yaml:"match"`
}

// AssetsConfig points at the two header images.
type AssetsConfig struct {
	LogoPath  string `yaml:"logo"`
	BadgePath string `yaml:"badge"`
}

// AdvisoryConfig is one recommendation rule.
type AdvisoryConfig struct {
	Category string `yaml:"category"`
	Contains string `yaml:"contains"`
	Title    string `yaml:"title"`
	Detail   string `yaml:"detail"`
	Link     string `yaml:"link"`
}

// Load reads .env, the YAML file named by FINESI_CONFIG (if any) and
// environment overrides.
func Load() Config {
	// Best-effort: load local dev environment variables.
	_ = LoadEnvFile(DotEnvPath)
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom is Load with an explicit YAML path. An empty path skips the file.
func LoadFrom(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config: cannot read file, using defaults")
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config: cannot parse file, using defaults")
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Catalog.Source != SourceFile && cfg.Catalog.Source != SourceSQLite {
		log.Warn().Str("source", cfg.Catalog.Source).Msg("config: unknown catalog source, using file")
		cfg.Catalog.Source = SourceFile
	}

	return cfg
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// Categories returns the configured label matchers, or the built-in ones when
// none are configured.
func (c Config) Categories() []catalog.Category {
	if len(c.Catalog.Categories) == 0 {
		return catalog.DefaultCategories
	}
	out := make([]catalog.Category, 0, len(c.Catalog.Categories))
	for _, cc := range c.Catalog.Categories {
		out = append(out, catalog.Category{Key: cc.Key, Match: cc.Match})
	}
	return out
}

// Rules returns the configured advisory rules, or the built-in ones when none
// are configured.
func (c Config) Rules() []advisor.Rule {
	if len(c.Advisories) == 0 {
		return advisor.DefaultRules
	}
	out := make([]advisor.Rule, 0, len(c.Advisories))
	for _, a := range c.Advisories {
		out = append(out, advisor.Rule{
			Category: a.Category,
			Contains: a.Contains,
			Advisory: advisor.Advisory{Title: a.Title, Detail: a.Detail, Link: a.Link},
		})
	}
	return out
}

func defaultConfig() Config {
	return Config{
		Env:      defaultEnv,
		Port:     defaultPort,
		DBPath:   defaultDBPath,
		LogLevel: defaultLogLevel,
		Catalog: CatalogConfig{
			Path:   defaultCatalogPath,
			Source: SourceFile,
		},
		Assets: AssetsConfig{
			LogoPath:  defaultLogoPath,
			BadgePath: defaultBadgePath,
		},
	}
}

func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{
		"APP_ENV":        &c.Env,
		"PORT":           &c.Port,
		"DB_PATH":        &c.DBPath,
		"LOG_LEVEL":      &c.LogLevel,
		"CATALOG_PATH":   &c.Catalog.Path,
		"CATALOG_SHEET":  &c.Catalog.Sheet,
		"CATALOG_SOURCE": &c.Catalog.Source,
		"LOGO_PATH":      &c.Assets.LogoPath,
		"BADGE_PATH":     &c.Assets.BadgePath,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

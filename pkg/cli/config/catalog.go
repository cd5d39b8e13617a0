package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for the question catalog file
type Catalog struct {
	path string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Question catalog file (TOML or YAML)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("RISKAUDIT_CATALOG"),
			Destination: &x.path,
		},
	}
}

// Path returns the catalog file path
func (x *Catalog) Path() string {
	return x.path
}

// Configure loads and validates the catalog file
func (x *Catalog) Configure() (*AppConfig, error) {
	if x.path == "" {
		return nil, goerr.Wrap(ErrConfigNotFound, "--catalog is required")
	}
	return LoadAppConfiguration(x.path)
}

func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

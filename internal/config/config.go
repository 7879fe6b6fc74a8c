package bnelim

import (
	"github.com/go-sod/bnelim/internal/database"
	"github.com/go-sod/bnelim/internal/driver"
	"github.com/go-sod/bnelim/internal/elimination"
	"github.com/go-sod/bnelim/internal/export"
	"github.com/go-sod/bnelim/internal/sample"
	"github.com/go-sod/bnelim/internal/setup"
)

var (
	_ setup.DriverConfigProvider      = (*Config)(nil)
	_ setup.EliminationConfigProvider = (*Config)(nil)
	_ setup.SampleConfigProvider      = (*Config)(nil)
	_ setup.ExportConfigProvider      = (*Config)(nil)
	_ setup.DatabaseConfigProvider    = (*Config)(nil)
	_ setup.MetricsConfigProvider     = (*Config)(nil)
)

type Config struct {
	MetricsAddr string `envconfig:"BNELIM_METRICS_ADDR"`
	Driver      driver.Config
	Elimination elimination.Config
	Sample      sample.Config
	Export      export.Config
	Database    database.Config
}

func (c *Config) DriverConfig() *driver.Config {
	return &c.Driver
}

func (c *Config) EliminationConfig() *elimination.Config {
	return &c.Elimination
}

func (c *Config) SampleConfig() *sample.Config {
	return &c.Sample
}

func (c *Config) ExportConfig() *export.Config {
	return &c.Export
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) MetricsAddress() string {
	return c.MetricsAddr
}

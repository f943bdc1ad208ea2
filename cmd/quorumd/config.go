package main

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the process configuration. Every value can be overwritten
// by the matching command line flag.
type Config struct {
	Home        string `env:"QUORUM_HOME"`
	Bind        string `env:"QUORUM_BIND" envDefault:"tcp://localhost:26658"`
	Debug       bool   `env:"QUORUM_DEBUG" envDefault:"false"`
	LogLevel    string `env:"QUORUM_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"QUORUM_METRICS_ADDR"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(errors.ErrInput, err.Error())
	}
	if c.Home == "" {
		c.Home = filepath.Join(os.ExpandEnv("$HOME"), ".quorumd")
	}
	return c, nil
}

// Logger returns a logger writing to stdout that drops entries below
// the configured level.
func (c Config) Logger() (log.Logger, error) {
	allowed, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	return log.NewFilter(logger, allowed).With("module", "quorum"), nil
}

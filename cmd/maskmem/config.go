// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Config is the configuration of a run. It can be loaded from a TOML file and
// flags given on the command line take precedence over the file.
type Config struct {
	Part      int    `toml:"part"`      // 1, 2 or 0 for both parts
	Addrbits  int    `toml:"addrbits"`  // number of address bits
	Nodesize  int    `toml:"nodesize"`  // initial capacity of the node table
	Maxnodes  int    `toml:"maxnodes"`  // limit on the node table, 0 if none
	Compact   bool   `toml:"compact"`   // compact the node table before reporting
	Stats     bool   `toml:"stats"`     // print statistics about the diagram
	Dot       string `toml:"dot"`       // file receiving the diagram in DOT format
	Verbosity int    `toml:"verbosity"` // 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace
}

func defaultConfig() Config {
	return Config{
		Addrbits:  36,
		Nodesize:  1 << 10,
		Verbosity: 2,
	}
}

// loadConfig returns the default configuration, updated with the content of
// the file given with --config (if any) and then with the flags that are set.
func loadConfig(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if _, err := toml.DecodeFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("loading config %s: %w", file, err)
		}
	}
	if ctx.IsSet(partFlag.Name) {
		cfg.Part = ctx.Int(partFlag.Name)
	}
	if ctx.IsSet(addrbitsFlag.Name) {
		cfg.Addrbits = ctx.Int(addrbitsFlag.Name)
	}
	if ctx.IsSet(nodesizeFlag.Name) {
		cfg.Nodesize = ctx.Int(nodesizeFlag.Name)
	}
	if ctx.IsSet(maxnodesFlag.Name) {
		cfg.Maxnodes = ctx.Int(maxnodesFlag.Name)
	}
	if ctx.IsSet(compactFlag.Name) {
		cfg.Compact = ctx.Bool(compactFlag.Name)
	}
	if ctx.IsSet(statsFlag.Name) {
		cfg.Stats = ctx.Bool(statsFlag.Name)
	}
	if ctx.IsSet(dotFlag.Name) {
		cfg.Dot = ctx.String(dotFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if cfg.Part < 0 || cfg.Part > 2 {
		return cfg, fmt.Errorf("invalid part %d, expected 0, 1 or 2", cfg.Part)
	}
	return cfg, nil
}

// logLevel maps a verbosity in [0..5] to a logrus level.
func logLevel(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.FatalLevel
	case verbosity >= 5:
		return logrus.TraceLevel
	default:
		return logrus.Level(verbosity + 1)
	}
}

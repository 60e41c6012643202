// Package cliconfig loads the demo binary's configuration: a YAML file
// layered under command-line flags, flags winning over file, file winning
// over the built-in default — the same layering the teacher's
// cmd/always-cache/main.go flag set implies, just made explicit here.
package cliconfig

import (
	"flag"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the demo binary's recognized configuration surface.
type Config struct {
	Addr              string        `yaml:"addr"`
	Origin            string        `yaml:"origin"`
	DBFile            string        `yaml:"dbFile"`
	Shared            bool          `yaml:"shared"`
	HeuristicLifetime time.Duration `yaml:"heuristicLifetime"`
	Trace             bool          `yaml:"trace"`
}

// Default returns the built-in defaults, used when neither the config file
// nor a flag supplies a value.
func Default() Config {
	return Config{
		Addr:              ":8080",
		DBFile:            "httpcache.db",
		Shared:            true,
		HeuristicLifetime: 60 * time.Second,
	}
}

// Load reads the YAML file at path (if non-empty and present), then applies
// any flags found in args on top of it. Flags always win; the file wins over
// the default; a missing file is not an error.
func Load(path string, args []string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, err
			}
		} else if !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	fs := flag.NewFlagSet("httpcacheengine", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	fs.StringVar(&cfg.Origin, "origin", cfg.Origin, "origin URL to proxy to")
	fs.StringVar(&cfg.DBFile, "db", cfg.DBFile, "SQLite db file ('memory' for in-memory)")
	fs.BoolVar(&cfg.Shared, "shared", cfg.Shared, "apply shared-cache constraints")
	fs.DurationVar(&cfg.HeuristicLifetime, "heuristic-lifetime", cfg.HeuristicLifetime, "lifetime assumed for cacheable responses with no explicit freshness")
	fs.BoolVar(&cfg.Trace, "vv", cfg.Trace, "trace-level logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

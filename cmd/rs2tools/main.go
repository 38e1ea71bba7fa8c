package main

import (
	"fmt"
	stdlog "log"
	"os"

	"github.com/urfave/cli/v2"

	"rs2tools/pkg/appdir"
	"rs2tools/pkg/config"
	"rs2tools/pkg/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// cfgKey is where the Before hook leaves the loaded configuration.
const cfgKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		stdlog.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "rs2tools",
		Usage:   "encrypt and decrypt obfuscated strings in RS2 package metadata",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file `PATH` (default: rs2tools.yaml in ., ~/.rs2tools, /etc/rs2tools)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "sizing",
				Usage: "word sizing `MODE`: terminated or compact",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output `FORMAT`: text or json",
			},
			&cli.StringFlag{
				Name:  "history-db",
				Usage: "SQLite history `PATH`, relative to ~/.rs2tools; empty disables history",
			},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			return log.Close()
		},
		Commands: []*cli.Command{
			encryptCommand,
			decryptCommand,
			decodeFileCommand,
			checkCommand,
			serveCommand,
			historyCommand,
		},
	}
}

// setup loads the configuration, applies global flag overrides and starts
// logging.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("sizing") {
		cfg.Sizing = c.String("sizing")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("history-db") {
		cfg.HistoryDB = c.String("history-db")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.SetStd(cfg.Debug)
	if cfg.HistoryDB != "" {
		path, err := appdir.Resolve(cfg.HistoryDB)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := log.Init(path, cfg.Debug); err != nil {
			// history is optional
			log.Warn().Err(err).Str("path", path).Msg("history disabled")
		}
	}
	log.Debug().Str("config_file", cfg.ConfigFile).Str("sizing", cfg.Sizing).Msg("configuration loaded")

	c.App.Metadata = map[string]any{cfgKey: cfg}
	return nil
}

func cfgFrom(c *cli.Context) *config.Config {
	return c.App.Metadata[cfgKey].(*config.Config)
}

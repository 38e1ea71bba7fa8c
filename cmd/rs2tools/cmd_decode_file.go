package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"rs2tools/pkg/batch"
	"rs2tools/pkg/log"
	"rs2tools/pkg/transform"
)

var decodeFileCommand = &cli.Command{
	Name:      "decode-file",
	Usage:     "decrypt every record in one or more record files",
	UsageText: "rs2tools decode-file [--out PATH] FILE...",
	Description: `Files hold one record per line; '#' starts a comment line. Files ending
in .gz or .zst are decompressed first. Files are decoded concurrently.`,
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:  "out",
			Usage: "write the report to `PATH` instead of stdout",
		},
		&cli.StringFlag{
			Name:  "compress",
			Usage: "compress the --out report with `ALGO`: none, gzip or zstd",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "decode at most `N` files at once (0: one per CPU)",
		},
	},
	Action: decodeFileCmd,
}

func decodeFileCmd(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: at least one FILE is required.", 1)
	}
	cfg := cfgFrom(c)
	workers := cfg.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}
	compression := cfg.CompressOutput
	if c.IsSet("compress") {
		compression = c.String("compress")
	}
	if _, err := transform.ForName(compression); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := batch.DecodeFiles(ctx, c.Args().Slice(), workers)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error decoding: %v", err), 1)
	}

	total, failed := 0, 0
	for _, fr := range results {
		total += len(fr.Records)
		failed += fr.Failed()
	}
	log.Info().Int("files", len(results)).Int("records", total).Int("failed", failed).Msg("decode-file finished")

	if out := c.Path("out"); out != "" {
		if err := batch.SaveReport(out, results, cfg.Output, compression); err != nil {
			return cli.Exit(fmt.Sprintf("Error writing report: %v", err), 1)
		}
	} else if err := batch.WriteReport(c.App.Writer, results, cfg.Output); err != nil {
		return cli.Exit(fmt.Sprintf("Error writing report: %v", err), 1)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d records could not be decoded", failed, total), 3)
	}
	return nil
}

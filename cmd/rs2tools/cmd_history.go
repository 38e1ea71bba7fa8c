package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"rs2tools/pkg/log"
)

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "print recent encrypt/decrypt events from the history database",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of events `NUMBER`",
			Value:   log.DefaultLimit,
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "print insertion time next to each raw JSON event",
		},
	},
	Action: historyCmd,
}

func historyCmd(c *cli.Context) error {
	count := c.Int("count")
	if count <= 0 {
		return cli.Exit("Error: --count (-n) must be a positive number.", 1)
	}

	entries, err := log.GetLastNLogs(count)
	if err != nil {
		if errors.Is(err, log.ErrNotInitialized) {
			return cli.Exit("Error: history is disabled (set history_db or --history-db).", 1)
		}
		return cli.Exit(fmt.Sprintf("Error retrieving history: %v", err), 1)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No history entries found.")
		return nil
	}

	for _, e := range entries {
		if c.Bool("pretty") {
			fmt.Fprintf(c.App.Writer, "%d %s %s", e.ID, e.InsertedAt.Format(time.RFC3339), e.Event)
		} else {
			fmt.Fprint(c.App.Writer, e.Event)
		}
	}
	return nil
}

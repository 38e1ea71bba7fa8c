package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"rs2tools/pkg/log"
	"rs2tools/pkg/record"
	"rs2tools/pkg/selfcheck"
)

var checkCommand = &cli.Command{
	Name:  "check",
	Usage: "verify the cipher against known package records",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "print every check, not only failures",
		},
	},
	Action: checkCmd,
}

func checkCmd(c *cli.Context) error {
	cfg := cfgFrom(c)
	report := selfcheck.Run()
	log.Info().Int("passed", report.Passed).Int("failed", report.Failed).Msg("self check")

	if cfg.Output == "json" {
		if err := writeJSONLines(c.App.Writer, []*selfcheck.Report{report}); err != nil {
			return err
		}
	} else {
		w := c.App.Writer
		for _, res := range report.Results {
			if res.OK && !c.Bool("verbose") {
				continue
			}
			status := "ok"
			if !res.OK {
				status = "FAIL"
			}
			fmt.Fprintf(w, "%-4s %-9s %s", status, res.Kind, res.Name)
			if res.Sizing != "" {
				fmt.Fprintf(w, " (%s)", res.Sizing)
			}
			fmt.Fprintf(w, " %s\n", record.Format(res.Words))
			if !res.OK {
				fmt.Fprintf(w, "     want %q\n     got  %q\n", res.Want, res.Got)
				if res.Err != "" {
					fmt.Fprintf(w, "     error %s\n", res.Err)
				}
			}
		}
		fmt.Fprintf(w, "%d passed, %d failed\n", report.Passed, report.Failed)
	}

	if !report.OK() {
		return cli.Exit("self check failed", 2)
	}
	return nil
}

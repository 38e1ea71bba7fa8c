package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"rs2tools/pkg/api"
	"rs2tools/pkg/log"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "serve /encrypt, /decrypt and /check over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "listen `ADDRESS` (default from config, :7780)",
		},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	cfg := cfgFrom(c)
	addr := cfg.ListenAddr
	if c.IsSet("listen") {
		addr = c.String("listen")
	}

	a := api.NewApi(cfg.SizingMode())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Printf("received signal %s, shutting down gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("api shutdown")
		}
	}()

	if err := a.Run(addr); err != nil {
		return cli.Exit(fmt.Sprintf("Error serving on %s: %v", addr, err), 1)
	}
	return nil
}

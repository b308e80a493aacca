package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avolkovs/shopdeck/internal/buildinfo"
	"github.com/avolkovs/shopdeck/internal/client/cli"
	"github.com/avolkovs/shopdeck/internal/client/config"
	"github.com/avolkovs/shopdeck/internal/logging"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "shopdeck",
		Short:         "Terminal client for the ShopDeck marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Config flags (-a, -d, -t, -config) are parsed by the config
		// package directly from os.Args.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context())
		},
	}

	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func runApp(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.New(os.Stderr, "info")

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Run(ctx)
	return nil
}

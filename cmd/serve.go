package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"profile-readme/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Regenerate the profile README on an interval",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		g, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		updater := &worker.ReadmeUpdater{
			Generator: g,
			Interval:  cfg.UpdateInterval(),
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		slog.Info("starting readme updater", "output", cfg.Readme.Output, "interval", updater.Interval)
		var w worker.Worker = updater
		return w.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

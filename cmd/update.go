package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// updateCmd regenerates the profile README once.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Regenerate the profile README once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd)
	},
}

func runUpdate(cmd *cobra.Command) error {
	cfg := GetConfig()
	g, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	slog.Info("update: generating readme", "output", cfg.Readme.Output)
	path, err := g.Write(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

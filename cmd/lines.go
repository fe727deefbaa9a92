package cmd

import (
	"context"
	"fmt"

	"profile-readme/internal/readme"

	"github.com/spf13/cobra"
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "Print the latest releases block without writing the README",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agg := newAggregator(GetConfig())
		rels, err := agg.LatestReleases(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), readme.ReleaseBlock(rels))
		return nil
	},
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Print the latest posts block without writing the README",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agg := newAggregator(GetConfig())
		posts, err := agg.LatestPosts(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), readme.PostBlock(posts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(releasesCmd)
	rootCmd.AddCommand(postsCmd)
}

package cmd

import (
	"encoding/json"
	"io"
	"postindex/pkg/services"

	"github.com/spf13/cobra"
)

var (
	listUnordered bool
	listSlugs     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints the post listing as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		lister, err := newLister(appCfg)
		if err != nil {
			return err
		}
		return runList(cmd, lister, listSlugs, !listUnordered)
	},
}

func runList(cmd *cobra.Command, lister *services.Lister, slugsOnly, ordered bool) error {
	ctx := cmd.Context()
	if slugsOnly {
		paths, err := lister.Paths(ctx)
		if err != nil {
			logger.Error("discovery failed", "error", err)
			return err
		}
		return writeJSON(cmd.OutOrStdout(), map[string][]string{"paths": paths})
	}

	posts, err := lister.Posts(ctx, ordered)
	if err != nil {
		logger.Error("aggregation failed", "error", err)
		return err
	}
	logger.Debug("listed posts", "count", len(posts), "ordered", ordered)
	return writeJSON(cmd.OutOrStdout(), posts)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	listCmd.Flags().BoolVar(&listUnordered, "unordered", false, "keep discovery order and omit dates")
	listCmd.Flags().BoolVar(&listSlugs, "slugs", false, "print only the discovered slugs")
	rootCmd.AddCommand(listCmd)
}

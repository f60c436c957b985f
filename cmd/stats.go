package cmd

import (
	"fmt"
	"strconv"

	"n8nmcp/internal/config"
	"n8nmcp/internal/formatting"
	"n8nmcp/internal/store"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		noColor    bool
		categories bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print catalog database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadLocal(loadOptions())
			if err != nil {
				return err
			}
			initCLILogging(cfg.Logging.Level)

			s, err := store.Open(cmd.Context(), cfg.Database.Path)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", s.Path())
			formatting.WriteTable(out, []string{"Metric", "Value"}, [][]string{
				{"Total nodes", strconv.Itoa(stats.TotalNodes)},
				{"AI-enabled nodes", strconv.Itoa(stats.AINodes)},
				{"Categories", strconv.Itoa(stats.Categories)},
				{"Workflow templates", strconv.Itoa(stats.TotalTemplates)},
			}, !noColor)

			if categories {
				names, err := s.GetNodeCategories(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(names))
				for _, name := range names {
					rows = append(rows, []string{name})
				}
				formatting.WriteTable(out, []string{"Category"}, rows, !noColor)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored table headers")
	cmd.Flags().BoolVar(&categories, "categories", false, "also list node categories")
	return cmd
}

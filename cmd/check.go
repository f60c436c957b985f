package cmd

import (
	"context"
	"fmt"
	"time"

	"n8nmcp/internal/config"
	"n8nmcp/internal/n8n"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the n8n API is reachable with the configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(loadOptions())
			if err != nil {
				return err
			}
			initCLILogging(cfg.Logging.Level)

			client := n8n.NewClient(cfg.N8N.APIURL, cfg.N8N.APIKey)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if !client.TestConnection(ctx) {
				return fmt.Errorf("failed to connect to n8n API at %s. Check your N8N_API_URL and N8N_API_KEY", cfg.N8N.APIURL)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Connected to n8n at %s\n", client.BaseURL())
			return nil
		},
	}
}

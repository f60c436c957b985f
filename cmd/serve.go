package cmd

import (
	"fmt"

	"n8nmcp/internal/app"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Starts the MCP server on the transport selected by MCP_MODE.

stdio (default) speaks JSON-RPC on standard input and output, which is how MCP
clients such as Claude Desktop launch servers. Logs go to stderr.

http serves the streamable HTTP transport on MCP_HTTP_ADDR
(default 127.0.0.1:3000).

Startup fails when the n8n API cannot be reached with the configured URL and
API key.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := app.NewApplication(cmd.Context(), app.Options{
		ConfigPath: configPath,
		Version:    GetVersion(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(cmd.Context())
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"n8nmcp/internal/config"
	"n8nmcp/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, n8n unreachable).
	ExitCodeError = 1
	// ExitCodeConfigError indicates missing or invalid configuration.
	ExitCodeConfigError = 2
)

var (
	configPath string
	envFile    string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "n8n-mcp",
	Short: "MCP server for building and managing n8n workflows",
	Long: `n8n-mcp exposes an n8n instance and a searchable catalog of n8n nodes and
workflow templates to AI assistants over the Model Context Protocol.

Configuration is read from environment variables (N8N_API_URL, N8N_API_KEY,
DATABASE_PATH, LOG_LEVEL, MCP_MODE, MCP_HTTP_ADDR), optionally layered over a
YAML file given with --config. A .env file in the working directory is loaded
first when present.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
	},
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits with a code describing the failure.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "n8n-mcp version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if config.IsConfigurationError(err) {
		return ExitCodeConfigError
	}
	return ExitCodeError
}

// loadEnvFile loads variables from path without overriding ones already set.
// A missing file is only an error when it was asked for explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		logging.Debug("CLI", "Loaded environment from %s", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	return &config.ConfigurationError{
		Source:    "file",
		FilePath:  path,
		ErrorType: config.ErrorTypeIO,
		Message:   fmt.Sprintf("failed to load env file: %v", err),
	}
}

// initCLILogging sends logs to stderr at the configured level.
func initCLILogging(level string) {
	l, err := logging.ParseLevel(level)
	if err != nil {
		l = logging.LevelInfo
	}
	logging.Init(l, os.Stderr)
}

func loadOptions() config.LoadOptions {
	return config.LoadOptions{FilePath: configPath}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
}

package cmd

import (
	"fmt"
	"strings"

	"n8nmcp/internal/config"
	"n8nmcp/internal/store"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load nodes and templates into the catalog database",
		Long: `Loads a node and template catalog into the database at DATABASE_PATH,
creating it when needed.

Without --file the sample catalog bundled with the binary is used. Seed files
may be YAML or JSON with top-level "nodes" and "templates" lists. Nodes are
upserted; templates whose name already exists are skipped, so seeding twice
is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadLocal(loadOptions())
			if err != nil {
				return err
			}
			initCLILogging(cfg.Logging.Level)

			seed, err := loadSeed(seedFile)
			if err != nil {
				return err
			}

			s, err := store.Open(cmd.Context(), cfg.Database.Path)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := store.Seed(cmd.Context(), s, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ Upserted %d nodes\n", result.Nodes)
			fmt.Fprintf(out, "✅ Inserted %d templates\n", result.Templates)
			if len(result.SkippedTemplates) > 0 {
				fmt.Fprintf(out, "⏭️  Skipped existing templates: %s\n", strings.Join(result.SkippedTemplates, ", "))
			}
			fmt.Fprintf(out, "\n✅ Database initialized at: %s\n", s.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed file to load instead of the bundled sample catalog")
	return cmd
}

func loadSeed(path string) (*store.SeedFile, error) {
	if path == "" {
		return store.SampleCatalog()
	}
	return store.LoadSeedFile(path)
}

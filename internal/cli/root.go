package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/config"
)

// NewRootCommand builds the catalog command tree. Running it without a
// subcommand starts the HTTP server.
func NewRootCommand(version, commit string) *cobra.Command {
	var (
		cfg    *config.Config
		dbPath string
	)

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Library catalogue web application",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.NewConfig()
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the catalogue database (overrides DATABASE_PATH)")

	loadConfig := func() *config.Config { return cfg }

	serve := newServeCommand(loadConfig, version)
	root.RunE = serve.RunE

	root.AddCommand(
		serve,
		newInitDBCommand(loadConfig),
		newCreateAdminCommand(loadConfig),
	)
	return root
}

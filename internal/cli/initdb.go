package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/entrypoint"
)

func newInitDBCommand(loadConfig func() *config.Config) *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the schema, the default administrator and the sample catalogue",
		Long: `Create the database schema and the default administrator account
(ADMIN_USERNAME / ADMIN_PASSWORD). The sample books are inserted only when
the books table is empty, so running this twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			db, err := entrypoint.OpenDatabase(cfg, !noSeed)
			if err != nil {
				return err
			}
			defer db.Close()

			count, err := books.NewRepository(db.DB).CountBooks()
			if err != nil {
				return fmt.Errorf("failed to count books: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s (%d books)\n", cfg.Database.Path, count)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Do not insert the sample catalogue")
	return cmd
}

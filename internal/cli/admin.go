package cli

import (
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/users"
)

// passwordReader reads a password without echoing it. Replaced in tests.
var passwordReader = func(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(out)
	return strings.TrimSpace(string(bytePassword)), nil
}

func newCreateAdminCommand(loadConfig func() *config.Config) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create-admin <username>",
		Short: "Create an administrator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			out := cmd.OutOrStdout()

			if password == "" {
				first, err := passwordReader(out, "Password: ")
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				second, err := passwordReader(out, "Repeat password: ")
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				if first != second {
					return fmt.Errorf("passwords do not match")
				}
				password = first
			}

			db, err := database.NewDatabase(cfg.Database.Path, database.Options{SkipSeed: true})
			if err != nil {
				return err
			}
			defer db.Close()

			svc := auth.NewService(users.NewRepository(db.DB), cfg.Auth)
			user, err := svc.CreateAdmin(args[0], password)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Created administrator %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/diewo77/product-organizer/internal/db"
	"github.com/spf13/cobra"
)

const skipPrepare = "skip-prepare"

func newRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "organizer",
		Short:         "Catalogue digital products, track clients and send files with receipts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := cmd.Annotations[skipPrepare]; ok {
				return nil
			}
			return a.prepare(cmd.Context())
		},
	}
	root.AddCommand(
		a.migrateCmd(),
		a.seedCmd(),
		a.productCmd(),
		a.clientCmd(),
		a.templateCmd(),
		a.sendCmd(),
	)
	return root
}

func (a *App) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "migrate",
		Short:       "Run database migrations and exit",
		Annotations: map[string]string{skipPrepare: ""},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Migrate(a.db.WithContext(cmd.Context()), a.cfg.Database); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed successfully")
			return nil
		},
	}
}

func (a *App) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default message templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.Seed(a.db.WithContext(cmd.Context())); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seeding completed successfully")
			return nil
		},
	}
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

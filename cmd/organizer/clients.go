package main

import (
	"fmt"

	"github.com/diewo77/product-organizer/internal/models"
	"github.com/spf13/cobra"
)

func (a *App) clientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage recorded clients and their files",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := a.clients.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clients yet")
				return nil
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tADDED")
			for _, c := range clients {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.DisplayName(), c.Email, c.DateAdded.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}

	edit := &cobra.Command{
		Use:   "edit <id> <name>",
		Short: "Set the display name of a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.clients.Rename(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client #%d renamed to %s\n", id, args[1])
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Forget a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.clients.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client #%d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, edit, del, a.clientFilesCmd())
	return cmd
}

func (a *App) clientFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage the per-client file folder",
	}

	list := &cobra.Command{
		Use:   "list <client-id>",
		Short: "List the files kept for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.clientByArg(cmd, args[0])
			if err != nil {
				return err
			}
			names, err := a.clientFiles.List(c.ReceiptName())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No files in %s\n", a.clientFiles.Folder(c.ReceiptName()))
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <client-id> <file>",
		Short: "Copy a file into a client's folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.clientByArg(cmd, args[0])
			if err != nil {
				return err
			}
			dest, err := a.clientFiles.Add(c.ReceiptName(), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", dest)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <client-id> <name>",
		Short: "Delete a file from a client's folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.clientByArg(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.clientFiles.Remove(c.ReceiptName(), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
			return nil
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func (a *App) clientByArg(cmd *cobra.Command, arg string) (*models.Client, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	return a.clients.Get(cmd.Context(), id)
}

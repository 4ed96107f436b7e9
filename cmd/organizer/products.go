package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/diewo77/product-organizer/internal/models"
	"github.com/diewo77/product-organizer/internal/services"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *App) productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage the product catalogue",
	}

	var in services.NewProduct
	add := &cobra.Command{
		Use:   "add <file>",
		Short: "Copy a file into the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.SourcePath = args[0]
			p, err := a.catalog.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product #%d added: %s\n", p.ID, p.FilePath)
			return nil
		},
	}
	add.Flags().StringVar(&in.Title, "title", "", "product title")
	add.Flags().StringVar(&in.Tags, "tags", "", "comma separated tags")
	add.Flags().StringVar(&in.Category, "category", "", "product category")
	_ = add.MarkFlagRequired("title")

	list := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := a.catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			return printProducts(cmd, products)
		},
	}

	search := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find products by title, tags or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.catalog.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printProducts(cmd, products)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a product and its stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.catalog.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product #%d deleted\n", id)
			return nil
		},
	}

	open := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a product's stored file with the default application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a.catalog.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if exists, _ := afero.Exists(a.fs, p.FilePath); !exists {
				return fmt.Errorf("product #%d: file %s is missing", id, p.FilePath)
			}
			return a.open(p.FilePath)
		},
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the catalogue as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := a.fs.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			n, err := a.catalog.ExportCSV(cmd.Context(), w)
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d products to %s\n", n, out)
			}
			return nil
		},
	}
	export.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of stdout")

	cmd.AddCommand(add, list, search, open, del, export)
	return cmd
}

func printProducts(cmd *cobra.Command, products []models.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No products found")
		return nil
	}
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tCATEGORY\tFILE\tADDED")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, strings.Join(p.TagList(), ", "), p.Category, p.FileName(), p.DateAdded.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

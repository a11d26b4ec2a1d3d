package main

import (
	"fmt"
	"io"
	"os"

	"pet-manager/internal/transfer"

	"github.com/spf13/cobra"
)

func (c *cli) exportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole collection as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := transfer.ParseFormat(format)
			if err != nil {
				return err
			}
			if out != "" && !cmd.Flags().Changed("format") {
				f = transfer.FormatForPath(out)
			}

			if out == "" {
				return transfer.Encode(c.out, f, c.app.Pets.List())
			}
			return writeFile(out, func(w io.Writer) error {
				return transfer.Encode(w, f, c.app.Pets.List())
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json | yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// writeFile crea path y reporta también el error de Close: en escritura es
// donde aparece un flush incompleto.
func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole collection with the contents of a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer file.Close()

			items, err := transfer.Decode(file, transfer.FormatForPath(args[0]))
			if err != nil {
				return err
			}
			if err := transfer.CheckIDs(items); err != nil {
				return err
			}

			c.app.Pets.ReplaceAll(items)
			_, _ = fmt.Fprintf(c.out, "imported %d pets\n", len(items))
			return nil
		},
	}
}

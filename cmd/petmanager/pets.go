package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"pet-manager/internal/domain/pets"
	"pet-manager/internal/editor"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// formFlags mapea cada campo del formulario a un flag.
var formFlags = []struct {
	flag  string
	field editor.Field
}{
	{"name", editor.FieldName},
	{"species", editor.FieldSpecies},
	{"breed", editor.FieldBreed},
	{"age", editor.FieldAge},
	{"weight", editor.FieldWeight},
	{"color", editor.FieldColor},
	{"next-vaccination", editor.FieldNextVaccination},
	{"notes", editor.FieldNotes},
	{"image-url", editor.FieldImageURL},
}

func addFormFlags(fs *pflag.FlagSet) {
	for _, ff := range formFlags {
		spec, _ := editor.Spec(ff.field)
		usage := spec.Label
		if spec.Required {
			usage += " (required)"
		}
		fs.String(ff.flag, "", usage)
	}
}

// applyFormFlags pasa por el control de cada campo solo los flags que se usaron.
func applyFormFlags(fs *pflag.FlagSet, ed *editor.Editor) error {
	for _, ff := range formFlags {
		f := fs.Lookup(ff.flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := ed.Input(ff.field, f.Value.String()); err != nil {
			return fmt.Errorf("--%s=%q: %w", ff.flag, f.Value.String(), err)
		}
	}
	return nil
}

func (c *cli) newEditor() *editor.Editor {
	return editor.New(c.app.Pets,
		editor.WithNotifier(editor.WriterNotifier{W: c.errOut}),
		editor.WithLogger(c.log),
	)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := c.app.Pets.List()
			if len(items) == 0 {
				_, _ = fmt.Fprintln(c.out, "no pets registered")
				return nil
			}

			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tBREED\tAGE\tWEIGHT\tNEXT VACCINATION")
			for _, p := range items {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					p.ID, p.Name, p.Species, p.Breed, p.Age,
					strconv.FormatFloat(p.Weight, 'f', -1, 64),
					valueOr(p.NextVaccination, "-"),
				)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one pet as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.Pets.GetByID(args[0])
			if err != nil {
				return err
			}
			return c.printJSON(p)
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new pet",
		Example: `  petmanager add --name Rex --species Dog --age 3 --breed Labrador --weight 28.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := c.newEditor()
			ed.SetEditing(c.app.Pets.Editing())

			if err := applyFormFlags(cmd.Flags(), ed); err != nil {
				return err
			}

			before := len(c.app.Pets.List())
			if err := ed.Submit(); err != nil {
				return err
			}

			items := c.app.Pets.List()
			if len(items) <= before {
				return errors.New("pet was not added")
			}
			return c.printJSON(items[len(items)-1])
		},
	}
	addFormFlags(cmd.Flags())
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing pet; only the given flags change",
		Example: `  petmanager edit 3f2a... --weight 30 --next-vaccination 2025-09-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editing, err := c.app.Pets.StartEdit(args[0])
			if err != nil {
				return err
			}

			ed := c.newEditor()
			ed.SetEditing(editing)

			if err := applyFormFlags(cmd.Flags(), ed); err != nil {
				ed.Cancel()
				return err
			}

			if dryRun {
				d := ed.Draft()
				ed.Cancel()
				return c.printJSON(d)
			}

			if err := ed.Submit(); err != nil {
				return err
			}
			ed.SetEditing(c.app.Pets.Editing())

			p, err := c.app.Pets.GetByID(editing.ID)
			if err != nil {
				return err
			}
			return c.printJSON(p)
		},
	}
	addFormFlags(cmd.Flags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the resulting draft and cancel without saving")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Pets.Delete(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the whole stored collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Store.Clear()
			_, _ = fmt.Fprintln(c.out, "storage cleared")
			return nil
		},
	}
}

func (c *cli) fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Describe the form fields and their input constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "FIELD\tKIND\tREQUIRED\tCONSTRAINTS")
			for _, s := range editor.Fields() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", s.Field, s.Kind, s.Required, constraints(s))
			}
			return tw.Flush()
		},
	}
}

func constraints(s editor.FieldSpec) string {
	switch s.Kind {
	case editor.KindSelect:
		return fmt.Sprintf("one of %v", s.Options)
	case editor.KindNumber:
		out := ""
		if s.Min != nil {
			out += "min=" + strconv.FormatFloat(*s.Min, 'f', -1, 64) + " "
		}
		if s.Max != nil {
			out += "max=" + strconv.FormatFloat(*s.Max, 'f', -1, 64) + " "
		}
		return out + "step=" + strconv.FormatFloat(s.Step, 'f', -1, 64)
	case editor.KindDate:
		return "YYYY-MM-DD"
	case editor.KindURL:
		return "absolute http(s) URL"
	case editor.KindTextarea:
		return "multi-line"
	default:
		return "-"
	}
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

var _ editor.Callbacks = (*pets.Service)(nil)

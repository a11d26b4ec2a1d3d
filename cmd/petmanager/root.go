package main

import (
	"fmt"
	"io"

	"pet-manager/internal/app"
	"pet-manager/internal/platform/config"
	"pet-manager/internal/platform/logger"

	"github.com/spf13/cobra"
)

// cli guarda el estado compartido entre comandos de una ejecución.
type cli struct {
	out    io.Writer
	errOut io.Writer

	configFile string

	app *app.App
	log logger.Logger
}

// execute corre el comando y libera storage y logger aunque el comando falle:
// cobra no llama a los PostRun cuando RunE devuelve error.
func execute(root *cobra.Command, c *cli) error {
	err := root.Execute()
	if terr := c.teardown(); terr != nil && err == nil {
		err = terr
	}
	return err
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *cli) {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "petmanager",
		Short: "Manage pet records stored locally",
		Long: `petmanager creates, edits and stores a small set of pet records.

The whole collection is kept as a single JSON value under one storage key,
in a local directory (default), an embedded sqlite file, or memory.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default ./petmanager.yaml if present)")
	pf.String("storage", "", "storage backend: file | sqlite | memory")
	pf.String("path", "", "storage path (directory for file, .db file for sqlite)")
	pf.String("log-level", "", "log level: debug | info | warn | error")

	root.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.addCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.clearCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.fieldsCmd(),
	)
	return root, c
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Loader{
		File:  c.configFile,
		Flags: cmd.Flags(),
		FlagKeys: map[string]string{
			"storage.backend": "storage",
			"storage.path":    "path",
			"log.level":       "log-level",
		},
	}.Load()
	if err != nil {
		return err
	}

	c.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	a, err := app.New(cfg, c.log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	c.app = a
	return nil
}

// teardown es idempotente.
func (c *cli) teardown() error {
	if c.log != nil {
		logger.Sync(c.log)
	}
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/frontier/pkg/buildinfo"
	"github.com/matzehuels/frontier/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the config file is loaded (--config, or the
// default location when it exists) and flags are applied over it:
//
//   - --verbose (-v) enables debug logging, otherwise log_level applies
//   - --dataset overrides the dataset key
//   - --no-cache disables the snapshot cache
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Frontier finds degrees of separation and plays perfect tic-tac-toe",
		Long: `Frontier runs two classic search engines: a breadth-first search for the
shortest chain of co-stars between two people in a movie dataset, and a
minimax search with alpha-beta pruning that plays tic-tac-toe perfectly.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default "+config.Path()+")")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&c.flags.dataset, "dataset", "d", "", "dataset: CSV directory, SQLite file or MongoDB URI")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the dataset snapshot cache")

	root.AddCommand(c.degreesCommand())
	root.AddCommand(c.datasetCommand())
	root.AddCommand(c.tictactoeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.SetLogLevel(levelFor(c.flags.verbose, cfg.LogLevel))

	if c.flags.dataset == "" {
		c.flags.dataset = cfg.Dataset
	}
	return nil
}

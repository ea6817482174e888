package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/degrees"
	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/pipeline"
)

// degreesCommand creates the "degrees" command.
func (c *CLI) degreesCommand() *cobra.Command {
	var (
		sourceID, targetID string
		frontier           string
		timeout            time.Duration
		dotPath, svgPath   string
		detailed, refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "degrees [source] [target]",
		Short: "Find the shortest chain of co-stars between two people",
		Long: `Find how many productions separate two people. Each step is a production
both people starred in. Names are matched ignoring case; when a name is
shared, you are asked which person you mean. Names not given as arguments
are read from the terminal.`,
		Example: `  frontier degrees -d data/large "Kevin Bacon" "Tom Hanks"
  frontier degrees --source-id 102 --target-id 158 --svg chain.svg`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

			r := c.newRunner(ctx)
			defer r.Close()
			ds, _, err := c.loadDataset(ctx, r, refresh)
			if err != nil {
				return err
			}

			choose := c.chooser(p)
			source, err := c.endpoint(ds, p, args, 0, sourceID, choose)
			if err != nil {
				return reportLookup(cmd, err)
			}
			target, err := c.endpoint(ds, p, args, 1, targetID, choose)
			if err != nil {
				return reportLookup(cmd, err)
			}

			prog := newProgress(c.Logger)
			res, err := r.ShortestPath(ctx, ds, source, target, c.searchOptions(cmd, frontier, timeout))
			if err != nil {
				return err
			}
			c.Logger.Debug("searched", "explored", res.Explored)
			printPath(out, ds, source, res)
			if c.flags.verbose {
				prog.done(fmt.Sprintf("Explored %d people", res.Explored))
			}

			if dotPath == "" && svgPath == "" {
				return nil
			}
			if !res.Connected {
				c.Logger.Warn("nothing to draw, people are not connected")
				return nil
			}
			return c.drawChain(cmd, r, ds, source, res.Path, dotPath, svgPath, detailed)
		},
	}

	f := cmd.Flags()
	f.StringVar(&sourceID, "source-id", "", "source person ID")
	f.StringVar(&targetID, "target-id", "", "target person ID")
	f.StringVar(&frontier, "frontier", string(pipeline.DefaultFrontier), "frontier: queue (shortest path) or stack")
	f.DurationVar(&timeout, "timeout", 0, "search time limit (0 = none)")
	f.StringVar(&dotPath, "dot", "", "write the chain as Graphviz DOT to this file")
	f.StringVar(&svgPath, "svg", "", "write the chain as SVG to this file")
	f.BoolVar(&detailed, "detailed", false, "show birth years and release years in drawings")
	f.BoolVar(&refresh, "refresh", false, "reload the dataset even if a snapshot is cached")

	return cmd
}

// endpoint resolves the i-th person from the arguments, an ID flag, or a
// prompt.
func (c *CLI) endpoint(ds *dataset.Dataset, p *prompter, args []string, i int, id string, choose degrees.Chooser) (string, error) {
	var name string
	if i < len(args) {
		name = args[i]
	}
	if name == "" && id == "" {
		var err error
		if name, err = p.line("Name: "); err != nil {
			return "", errors.New(errors.ErrCodeInvalidInput, "no name given")
		}
	}
	return degrees.Lookup(ds, name, id, choose)
}

// reportLookup prints the fixed message for unknown people.
func reportLookup(cmd *cobra.Command, err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		fmt.Fprintln(cmd.OutOrStdout(), "Person not found.")
		return ErrReported
	case errors.ErrCodeAmbiguous:
		printError(cmd.ErrOrStderr(), "%s", err)
		printDetail(cmd.ErrOrStderr(), "pass --source-id or --target-id to choose")
		return ErrReported
	}
	return err
}

// printPath writes the result in the classic degrees format.
func printPath(w io.Writer, c degrees.Catalog, source string, res degrees.Result) {
	if !res.Connected {
		fmt.Fprintln(w, "Not connected.")
		return
	}
	fmt.Fprintf(w, "%d degrees of separation.\n", res.Path.Degrees())
	for i, l := range degrees.Describe(c, source, res.Path) {
		fmt.Fprintf(w, "%d: %s and %s starred in %s\n", i+1, l.Person1, l.Person2, l.Title)
	}
}

func (c *CLI) drawChain(cmd *cobra.Command, r *pipeline.Runner, ds *dataset.Dataset, source string, path degrees.Path, dotPath, svgPath string, detailed bool) error {
	targets := map[string]string{}
	if dotPath != "" {
		targets[pipeline.FormatDOT] = dotPath
	}
	if svgPath != "" {
		targets[pipeline.FormatSVG] = svgPath
	}
	formats := make([]string, 0, len(targets))
	for _, f := range []string{pipeline.FormatDOT, pipeline.FormatSVG} {
		if _, ok := targets[f]; ok {
			formats = append(formats, f)
		}
	}

	artifacts, err := r.DrawChain(cmd.Context(), ds, source, path, pipeline.Options{Formats: formats, Detailed: detailed})
	if err != nil {
		return err
	}
	for _, f := range formats {
		paths, err := writeOutputs(targets[f], map[string][]byte{f: artifacts[f]})
		if err != nil {
			return err
		}
		for _, p := range paths {
			printFile(cmd.ErrOrStderr(), p)
		}
	}
	return nil
}

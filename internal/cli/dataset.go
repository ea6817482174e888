package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/errors"
	"github.com/matzehuels/frontier/pkg/pipeline"
)

// datasetCommand creates the dataset inspection command.
func (c *CLI) datasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect, export and draw a dataset",
		Long: `Inspect the dataset named by --dataset: a directory with people.csv,
movies.csv and stars.csv, a SQLite database, a MongoDB URI, or a JSON/TOML
file written by "dataset export".`,
	}

	cmd.AddCommand(c.datasetStatsCommand())
	cmd.AddCommand(c.datasetPeopleCommand())
	cmd.AddCommand(c.datasetExportCommand())
	cmd.AddCommand(c.datasetDrawCommand())

	return cmd
}

// datasetStatsCommand creates the "dataset stats" subcommand.
func (c *CLI) datasetStatsCommand() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show what loading the dataset kept and skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := c.newRunner(cmd.Context())
			defer r.Close()
			ds, stats, err := c.loadDataset(cmd.Context(), r, refresh)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := ds.Stats()
			fmt.Fprintln(out, StyleTitle.Render("Dataset"))
			printKeyValue(out, "source", c.flags.dataset)
			printKeyValue(out, "people", strconv.Itoa(s.People))
			printKeyValue(out, "productions", strconv.Itoa(s.Productions))
			printKeyValue(out, "stars", strconv.Itoa(s.Stars))
			printKeyValue(out, "skipped", strconv.Itoa(s.Skipped))
			printKeyValue(out, "dropped", strconv.Itoa(s.Dropped))
			printStats(out, s, stats.CacheHit)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the dataset even if a snapshot is cached")
	return cmd
}

// datasetPeopleCommand creates the "dataset people" subcommand.
func (c *CLI) datasetPeopleCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "people [name]",
		Short: "List people, or the people sharing a name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := c.newRunner(cmd.Context())
			defer r.Close()
			ds, _, err := c.loadDataset(cmd.Context(), r, false)
			if err != nil {
				return err
			}

			var people []dataset.Person
			if len(args) == 1 {
				people, err = peopleNamed(ds, args[0])
				if err != nil {
					return reportLookup(cmd, err)
				}
			} else {
				people = ds.People()
			}

			total := len(people)
			if limit > 0 && total > limit {
				people = people[:limit]
			}
			fmt.Fprintln(cmd.OutOrStdout(), peopleTable(people))
			if len(people) < total {
				printDetail(cmd.ErrOrStderr(), "showing %d of %d, raise --limit for more", len(people), total)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows to print (0 = all)")
	return cmd
}

func peopleNamed(ds *dataset.Dataset, name string) ([]dataset.Person, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	ids := ds.ResolveName(name)
	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "person %q not found", name)
	}
	people := make([]dataset.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := ds.Person(id); ok {
			people = append(people, p)
		}
	}
	return people, nil
}

// datasetExportCommand creates the "dataset export" subcommand.
func (c *CLI) datasetExportCommand() *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dataset as JSON or TOML",
		Long: `Write the validated dataset as JSON or TOML. The file can be loaded
again with --dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, err := exportFunc(format)
			if err != nil {
				return err
			}
			r := c.newRunner(cmd.Context())
			defer r.Close()
			ds, _, err := c.loadDataset(cmd.Context(), r, false)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return write(ds, cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := write(ds, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Exported %d people", ds.NumPeople())
			printFile(cmd.ErrOrStderr(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func exportFunc(format string) (func(*dataset.Dataset, io.Writer) error, error) {
	switch format {
	case "json":
		return dataset.WriteJSON, nil
	case "toml":
		return dataset.WriteTOML, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "invalid export format: %s (must be json or toml)", format)
}

// datasetDrawCommand creates the "dataset draw" subcommand.
func (c *CLI) datasetDrawCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
	)
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw the whole collaboration graph",
		Long: `Draw every person and production as a bipartite graph. People without
productions are left out. Large datasets are refused; draw a single chain
with "degrees --svg" instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Formats: parseFormats(formats), Detailed: detailed}
			if err := opts.ValidateForDraw(); err != nil {
				return err
			}
			r := c.newRunner(cmd.Context())
			defer r.Close()
			ds, _, err := c.loadDataset(cmd.Context(), r, false)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			artifacts, err := r.DrawDataset(cmd.Context(), ds, "", nil, opts)
			if err != nil {
				return err
			}
			paths, err := writeOutputs(output, artifacts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Drew %d people", ds.NumPeople()))
			for _, p := range paths {
				printFile(cmd.ErrOrStderr(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "dataset.svg", "output file; the extension follows each format")
	cmd.Flags().StringVar(&formats, "format", "", "comma-separated formats: svg, dot (default svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show birth years and release years")
	return cmd
}

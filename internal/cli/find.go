package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	mio "github.com/matzehuels/motifscan/pkg/io"
	"github.com/matzehuels/motifscan/pkg/pipeline"
)

// Output formats for find results.
const (
	formatTable = "table"
	formatJSON  = mio.FormatJSON
	formatTSV   = mio.FormatTSV
)

// findOpts holds the flags of the find command.
type findOpts struct {
	motifPath   string
	name        string
	links       bool
	noSymmetry  bool
	limit       int
	timeout     time.Duration
	output      string
	linksOutput string
	format      string
	show        int
	interactive bool
	refresh     bool
	noCache     bool
}

// findCommand creates the find command.
func (c *CLI) findCommand() *cobra.Command {
	opts := findOpts{format: formatTable, show: 20}

	cmd := &cobra.Command{
		Use:   "find <network> [pattern]",
		Short: "Find every occurrence of a motif in a network",
		Long: `Find every occurrence of a motif in a network.

The motif is either an inline pattern of position pairs with edge types or a
motif file given with --motif. Occurrences that differ only by a symmetry of
the motif are reported once.`,
		Example: `  # Triangles of protein interactions
  motifscan find ppi.tsv "0-1:ppi,1-2:ppi,2-0:ppi"

  # Motif from a file, instances and used links written to files
  motifscan find ppi.tsv --motif ffl.toml -o ffl.tsv --links-output ffl-links.tsv

  # Stop after 1000 instances, machine-readable output
  motifscan find ppi.tsv "0-1:ppi,1-2:ppi" --limit 1000 --format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 2 {
				pattern = args[1]
			}
			return c.runFind(cmd, args[0], pattern, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.motifPath, "motif", "m", "", "motif file (.toml, .json or .motif)")
	cmd.Flags().StringVar(&opts.name, "name", "", "motif name for inline patterns")
	cmd.Flags().BoolVar(&opts.links, "links", false, "collect the network edges used by the instances")
	cmd.Flags().BoolVar(&opts.noSymmetry, "no-symmetry", false, "report every automorphic variant of each occurrence")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "stop after this many instances (0 = no limit)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop the search after this long (0 = no timeout)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write instances to a file (.json or .tsv)")
	cmd.Flags().StringVar(&opts.linksOutput, "links-output", "", "write the used links to a TSV file (implies --links)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "stdout format: table, json or tsv")
	cmd.Flags().IntVar(&opts.show, "show", opts.show, "instances shown in the table (0 = all)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse instances interactively")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runFind executes the find command.
func (c *CLI) runFind(cmd *cobra.Command, networkPath, pattern string, opts findOpts) error {
	ctx := cmd.Context()
	if err := opts.validate(pattern); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	// Machine-readable output on stdout stays free of decoration.
	quiet := opts.format != formatTable && opts.output == ""

	var spinner *Spinner
	if !quiet {
		spinner = newSpinnerWithContext(ctx, "Searching...")
		spinner.Start()
	}
	prog := newProgress(c.Logger)

	res, err := runner.Execute(ctx, pipeline.Options{
		NetworkPath:     networkPath,
		MotifPath:       opts.motifPath,
		Pattern:         pattern,
		MotifName:       opts.name,
		TrackLinks:      opts.links || opts.linksOutput != "",
		DisableSymmetry: opts.noSymmetry,
		MaxInstances:    opts.limit,
		Timeout:         opts.timeout,
		Refresh:         opts.refresh,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	occ := res.Occurrences
	prog.done(fmt.Sprintf("Found %d instances", occ.Count()))

	if quiet {
		return mio.WriteOccurrences(occ, cmd.OutOrStdout(), opts.format)
	}

	printSuccess("Found %s instances of %s", StyleNumber.Render(fmt.Sprint(occ.Count())), StyleHighlight.Render(occ.Motif))
	printDetail("%s · %d nodes · %d edges", occ.Pattern, res.Stats.NodeCount, res.Stats.EdgeCount)
	printStats(occ, res.CacheInfo.ResultHit)
	if occ.Cancelled {
		printWarning("Search stopped early; the result is incomplete")
	}

	if opts.output != "" {
		if err := mio.ExportOccurrences(occ, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	if opts.linksOutput != "" {
		if err := writeLinks(occ, opts.linksOutput); err != nil {
			return err
		}
		printFile(opts.linksOutput)
	}

	if opts.interactive {
		return c.browse(ctx, occ)
	}
	if opts.output == "" && occ.Count() > 0 {
		printNewline()
		fmt.Fprintln(stdout, instanceTable(occ, opts.show))
	}
	if occ.Count() > 0 && opts.output == "" && !opts.links {
		printNewline()
		printNextStep("Draw the occurrences", fmt.Sprintf("%s render %s %q", appName, networkPath, occ.Pattern))
	}
	return nil
}

// validate checks flag combinations before any file is read.
func (o findOpts) validate(pattern string) error {
	switch {
	case pattern == "" && o.motifPath == "":
		return errors.New(errors.ErrCodeInvalidInput, "need a pattern argument or --motif")
	case pattern != "" && o.motifPath != "":
		return errors.New(errors.ErrCodeInvalidInput, "give either a pattern argument or --motif, not both")
	case o.limit < 0:
		return errors.New(errors.ErrCodeInvalidInput, "--limit cannot be negative")
	case o.timeout < 0:
		return errors.New(errors.ErrCodeInvalidInput, "--timeout cannot be negative")
	}
	switch o.format {
	case formatTable, formatJSON, formatTSV:
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (use table, json or tsv)", o.format)
	}
	if o.interactive && o.format != formatTable {
		return errors.New(errors.ErrCodeInvalidInput, "--interactive needs --format table")
	}
	return nil
}

// browse runs the instance browser and prints the chosen instance.
func (c *CLI) browse(ctx context.Context, occ graph.Occurrences) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	i, err := runInstanceBrowser(occ)
	if err != nil || i < 0 {
		return err
	}
	printNewline()
	printInfo("Instance %d of %d", i+1, occ.Count())
	for p, id := range occ.Instances[i] {
		printKeyValue(fmt.Sprintf("p%d", p), id)
	}
	return nil
}

func writeLinks(occ graph.Occurrences, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := mio.WriteLinksTSV(occ, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

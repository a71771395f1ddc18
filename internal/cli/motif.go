package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
	mio "github.com/matzehuels/motifscan/pkg/io"
	"github.com/matzehuels/motifscan/pkg/motif"
	"github.com/matzehuels/motifscan/pkg/pipeline"
)

// motifOpts holds the flags of the motif command.
type motifOpts struct {
	file          string
	name          string
	json          bool
	automorphisms int
	noCache       bool
}

// motifCommand creates the motif inspection command.
func (c *CLI) motifCommand() *cobra.Command {
	var opts motifOpts

	cmd := &cobra.Command{
		Use:   "motif [pattern]",
		Short: "Show a motif's symmetry group and the constraints that break it",
		Example: `  motifscan motif "0-1:E,1-2:E,2-3:E,3-0:E"
  motifscan motif --file ffl.toml --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.load(args)
			if err != nil {
				return err
			}
			return c.runMotif(cmd, m, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "motif file (.toml, .json or .motif)")
	cmd.Flags().StringVar(&opts.name, "name", pipeline.DefaultMotifName, "motif name for inline patterns")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the analysis as JSON")
	cmd.Flags().IntVar(&opts.automorphisms, "automorphisms", 0, "also list up to this many automorphisms")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (o motifOpts) load(args []string) (*motif.Motif, error) {
	switch {
	case len(args) == 1 && o.file != "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "give either a pattern argument or --file, not both")
	case len(args) == 1:
		return mio.ParseMotif(o.name, args[0])
	case o.file != "":
		return mio.ImportMotif(o.file)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "need a pattern argument or --file")
}

func (c *CLI) runMotif(cmd *cobra.Command, m *motif.Motif, opts motifOpts) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sym, hit, err := runner.Symmetry(ctx, m)
	if err != nil {
		return err
	}
	c.Logger.Debug("symmetry", "motif", m.Name(), "cached", hit)

	var perms []motif.Permutation
	if opts.automorphisms > 0 {
		perms = m.Automorphisms(opts.automorphisms)
	}

	if opts.json {
		out := struct {
			graph.Symmetry
			Automorphisms []motif.Permutation `json:"automorphisms,omitempty"`
		}{sym, perms}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printSymmetry(sym)
	if len(perms) > 0 {
		printNewline()
		printInfo("Automorphisms (%d of %d)", len(perms), sym.GroupOrder)
		for _, p := range perms {
			printDetail("%s", formatPermutation(p))
		}
	}
	return nil
}

// formatPermutation writes p as "0→1 1→2 2→0".
func formatPermutation(p motif.Permutation) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%d%s%d", i, iconArrow, v)
	}
	return strings.Join(parts, " ")
}

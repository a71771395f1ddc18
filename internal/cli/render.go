package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/motifscan/pkg/errors"
	mio "github.com/matzehuels/motifscan/pkg/io"
	"github.com/matzehuels/motifscan/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output     string
	format     string
	motifPath  string
	name       string
	detailed   bool
	onlyMotif  bool
	noSymmetry bool
	timeout    time.Duration
	noCache    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <network> [pattern]",
		Short: "Draw a network, highlighting the occurrences of a motif",
		Long: `Draw a network with Graphviz. When a motif is given, the nodes of its
instances and the edges they use are highlighted.

The format is taken from --format or the output file extension and defaults
to SVG. DOT output without -o goes to stdout.`,
		Example: `  motifscan render ppi.tsv "0-1:ppi,1-2:ppi,2-0:ppi" -o triangles.svg
  motifscan render ppi.tsv --motif square.motif --only-motif -o square.png
  motifscan render ppi.tsv --format dot`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 2 {
				pattern = args[1]
			}
			return c.runRender(cmd, args[0], pattern, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "svg, png or dot (default from -o, else svg)")
	cmd.Flags().StringVarP(&opts.motifPath, "motif", "m", "", "motif file (.toml, .json or .motif)")
	cmd.Flags().StringVar(&opts.name, "name", "", "motif name for inline patterns")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with index and metadata, edges with type")
	cmd.Flags().BoolVar(&opts.onlyMotif, "only-motif", false, "draw only the nodes of motif instances")
	cmd.Flags().BoolVar(&opts.noSymmetry, "no-symmetry", false, "search without symmetry breaking")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop the search after this long (0 = no timeout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, networkPath, pattern string, opts renderOpts) error {
	ctx := cmd.Context()
	format, err := opts.resolveFormat()
	if err != nil {
		return err
	}
	withMotif := pattern != "" || opts.motifPath != ""
	if pattern != "" && opts.motifPath != "" {
		return errors.New(errors.ErrCodeInvalidInput, "give either a pattern argument or --motif, not both")
	}
	if opts.onlyMotif && !withMotif {
		return errors.New(errors.ErrCodeInvalidInput, "--only-motif needs a motif")
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var res *pipeline.Result
	if withMotif {
		res, err = runner.Execute(ctx, pipeline.Options{
			NetworkPath:     networkPath,
			MotifPath:       opts.motifPath,
			Pattern:         pattern,
			MotifName:       opts.name,
			TrackLinks:      true,
			DisableSymmetry: opts.noSymmetry,
			Timeout:         opts.timeout,
		})
	} else {
		res, err = networkResult(networkPath)
	}
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	data, hit, err := runner.RenderWithCacheInfo(ctx, res, pipeline.RenderOptions{
		Format:          format,
		Highlight:       withMotif,
		Detailed:        opts.detailed,
		OnlyHighlighted: opts.onlyMotif,
	})
	if err != nil {
		return err
	}
	prog.done("Rendered " + format)

	if opts.output == "" && format == pipeline.FormatDOT {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(filepath.Base(networkPath), filepath.Ext(networkPath)) + "." + format
	}
	if err := errors.ValidatePath(out); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	if withMotif {
		printSuccess("Rendered %d instances of %s", res.Occurrences.Count(), StyleHighlight.Render(res.Occurrences.Motif))
		if res.Occurrences.Cancelled {
			printWarning("Search stopped early; only part of the instances are highlighted")
		}
	} else {
		printSuccess("Rendered network")
	}
	status := iconFresh
	if hit {
		status = iconCached
	}
	printDetail("%d nodes · %d edges · %s", res.Network.NodeCount(), res.Network.EdgeCount(), status)
	printFile(out)
	return nil
}

// resolveFormat picks the render format from --format or the output file.
func (o renderOpts) resolveFormat() (string, error) {
	format := o.format
	if format == "" && o.output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(o.output)), ".")
		if format == "gv" {
			format = pipeline.FormatDOT
		}
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// networkResult wraps a bare network so it can be drawn without a search.
func networkResult(path string) (*pipeline.Result, error) {
	g, err := mio.ImportNetwork(path)
	if err != nil {
		return nil, err
	}
	hash, err := pipeline.NetworkHash(g)
	if err != nil {
		return nil, err
	}
	return &pipeline.Result{Network: g, NetworkHash: hash}, nil
}

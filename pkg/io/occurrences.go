package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/motifscan/pkg/errors"
	"github.com/matzehuels/motifscan/pkg/graph"
)

// WriteOccurrencesTSV writes one instance per line, node ids in position
// order separated by tabs, after a commented header naming the motif.
func WriteOccurrencesTSV(o graph.Occurrences, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# motif %s: %s\n", o.Motif, o.Pattern)
	fmt.Fprintf(bw, "# %d instances", o.Count())
	if o.Cancelled {
		fmt.Fprint(bw, " (search cancelled, result incomplete)")
	}
	fmt.Fprintln(bw)
	header := make([]string, o.Positions)
	for i := range header {
		header[i] = fmt.Sprintf("p%d", i)
	}
	fmt.Fprintf(bw, "#%s\n", strings.Join(header, "\t"))
	for _, in := range o.Instances {
		fmt.Fprintln(bw, strings.Join(in, "\t"))
	}
	return bw.Flush()
}

// WriteLinksTSV writes the used links as "a<TAB>b" lines.
func WriteLinksTSV(o graph.Occurrences, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, l := range o.Links {
		fmt.Fprintf(bw, "%s\t%s\n", l[0], l[1])
	}
	return bw.Flush()
}

// WriteOccurrences writes a result in the given format.
func WriteOccurrences(o graph.Occurrences, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return graph.WriteOccurrences(o, w)
	case FormatTSV:
		return WriteOccurrencesTSV(o, w)
	default:
		return errors.New(errors.ErrCodeUnsupported, "results cannot be written as %q", format)
	}
}

// ExportOccurrences writes a result file, choosing the format from its
// extension.
func ExportOccurrences(o graph.Occurrences, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteOccurrences(o, f, format)
}

// Copyright © 2017 Will Rowe <will.rowe@stfc.ac.uk>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/pathtrace"
	"github.com/will-rowe/origami/src/vhelix"
)

// the command line arguments
var (
	traceIn     *string // design to trace
	traceStrand *string // strand type to follow
	traceHelix  *int    // start helix, -1 traces from every 5' end
	traceIndex  *int    // start index
)

// the trace command (used by cobra)
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print the 3-D path of a strand, base by base",
	Long: `Print the 3-D path of a strand, base by base.

Each line is helix, index and x, y, z in nanometres. Crossovers between helices
are marked with an extra midpoint line.`,
	Run: func(cmd *cobra.Command, args []string) {
		runTrace()
	},
}

func init() {
	traceIn = traceCmd.Flags().StringP("input", "i", "-", "design to trace (- for STDIN)")
	traceStrand = traceCmd.Flags().StringP("strand", "s", "scaffold", "strand type to follow (scaffold or staple)")
	traceHelix = traceCmd.Flags().Int("helix", -1, "helix to start from (default: every 5' end)")
	traceIndex = traceCmd.Flags().Int("index", 0, "base to start from")
	RootCmd.AddCommand(traceCmd)
}

func runTrace() {
	conf, stop := start("trace")
	defer stop()
	st, err := vhelix.ParseStrandType(*traceStrand)
	misc.ErrorCheck(err)
	p, err := loadDesign(conf, *traceIn)
	misc.ErrorCheck(err)
	starts := pathtrace.FindBreakpoints(p, st)
	if *traceHelix >= 0 {
		starts = []vhelix.Address{{Helix: *traceHelix, Strand: st, Index: *traceIndex}}
	}
	for _, a := range starts {
		misc.ErrorCheck(writeTrace(os.Stdout, p, a))
	}
}

// writeTrace walks from start and writes one line per step
func writeTrace(w io.Writer, p *part.Part, start vhelix.Address) error {
	fmt.Fprintf(w, "# %s from %d[%d]\n", start.Strand, start.Helix, start.Index)
	walker := pathtrace.Walk(p, start)
	for walker.Next() {
		s := walker.Step()
		if s.Synthetic {
			fmt.Fprintf(w, "-\t-\t%.3f\t%.3f\t%.3f\n", s.Pos.X, s.Pos.Y, s.Pos.Z)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%.3f\n", s.Helix, s.Index, s.Pos.X, s.Pos.Y, s.Pos.Z)
	}
	return walker.Err()
}

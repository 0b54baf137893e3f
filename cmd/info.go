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

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/oligo"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

var infoIn *string // design to describe

// the info command (used by cobra)
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the helices and strands of a design",
	Run: func(cmd *cobra.Command, args []string) {
		runInfo()
	},
}

func init() {
	infoIn = infoCmd.Flags().StringP("input", "i", "-", "design to describe (- for STDIN)")
	RootCmd.AddCommand(infoCmd)
}

func runInfo() {
	conf, stop := start("info")
	defer stop()
	p, err := loadDesign(conf, *infoIn)
	misc.ErrorCheck(err)
	misc.ErrorCheck(describe(os.Stdout, p))
}

// describe writes a human readable summary of p
func describe(w io.Writer, p *part.Part) error {
	fmt.Fprintf(w, "name:\t%s\nlattice:\t%s\nhelices:\t%d\n", p.Name(), p.Lattice(), p.Len())
	for _, id := range p.IDs() {
		vh, _ := p.VirtualHelix(id)
		fmt.Fprintf(w, "  %v neighbours:", vh)
		for _, d := range lattice.Directions {
			fmt.Fprintf(w, " %d", vh.Neighbor(d))
		}
		sites, err := p.PotentialCrossovers(id)
		if err != nil {
			return err
		}
		counts := [2]int{}
		for _, s := range sites {
			counts[s.Strand]++
		}
		fmt.Fprintf(w, "\topen crossover sites: %d scaffold, %d staple\n", counts[vhelix.Scaffold], counts[vhelix.Staple])
	}
	for _, st := range vhelix.StrandTypes {
		oligos, err := oligo.Collect(p, st)
		if err != nil {
			return err
		}
		total, circular := 0, 0
		for _, o := range oligos {
			total += o.Length(p)
			if o.Circular {
				circular++
			}
		}
		fmt.Fprintf(w, "%s oligos:\t%d (%d circular, %d nt)\n", st, len(oligos), circular, total)
	}
	return nil
}

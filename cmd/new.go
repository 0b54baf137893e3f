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
	"log"

	"github.com/spf13/cobra"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/part"
)

// the command line arguments
var (
	newName  *string // design name
	newRows  *int    // lattice rows to fill
	newCols  *int    // lattice columns to fill
	newBases *int    // bases per helix
	newOut   *string // file to write
)

// the new command (used by cobra)
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a design with a block of fresh helices",
	Long: `Create a design with a block of fresh helices, one per lattice position in
the requested rows and columns. Each helix carries one unbroken scaffold and staple.
The lattice comes from --lattice.`,
	Run: func(cmd *cobra.Command, args []string) {
		runNew()
	},
}

func init() {
	newName = newCmd.Flags().StringP("name", "n", "untitled", "name of the design")
	newRows = newCmd.Flags().Int("rows", 1, "number of lattice rows to fill")
	newCols = newCmd.Flags().Int("cols", 2, "number of lattice columns to fill")
	newBases = newCmd.Flags().IntP("bases", "b", 0, "bases per helix (default: two lattice steps)")
	newOut = newCmd.Flags().StringP("output", "o", "-", "file to write the design to (- for STDOUT)")
	RootCmd.AddCommand(newCmd)
}

func runNew() {
	conf, stop := start("new")
	defer stop()
	lt, err := lattice.ParseType(conf.Lattice)
	misc.ErrorCheck(err)
	p, err := block(*newName, lt, *newRows, *newCols, *newBases)
	misc.ErrorCheck(err)
	log.Printf("\tcreated %d helices on a %s lattice", p.Len(), lt)
	misc.ErrorCheck(writeDesign(*newOut, p, false))
}

// block fills rows x cols lattice positions with fresh helices
func block(name string, lt lattice.Type, rows, cols, bases int) (*part.Part, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("need at least one row and column, got %dx%d", rows, cols)
	}
	if bases == 0 {
		bases = 2 * lt.Step()
	}
	if bases < 0 || bases%lt.Step() != 0 {
		return nil, fmt.Errorf("helices on a %s lattice need a multiple of %d bases, got %d", lt, lt.Step(), bases)
	}
	p := part.New(name, lt)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if _, err := p.CreateVirtualHelix(lattice.Coord{Row: row, Col: col}, bases); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

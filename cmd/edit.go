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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/will-rowe/origami/src/lattice"
	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

// the command line arguments
var (
	editIn     *string   // design to edit
	editOut    *string   // file to write
	editOps    *[]string // edits, applied in order
	editLegacy *bool     // write the legacy layout
)

// the edit command (used by cobra)
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Apply strand edits to a design",
	Long: `Apply strand edits to a design. Each --op is applied in order and the
design is only written if every edit succeeds.

  add <row> <col> <bases>                     create a helix at a lattice coordinate
  remove <helix>                              remove a helix and every link into it
  resize <helix> <bases> [front]              grow or shrink a helix at its 3' or front end
  xover <strand> <helix> <index> <helix> <index>  link a 3' end to a 5' end
  unxover <strand> <helix> <index>            break the crossover at a base
  clear <strand> <helix> <from> <to>          remove a run of bases
  connect <strand> <helix> <from> <to>        fill a run of bases with one strand
  color <strand> <helix> <index> <#rrggbb>    colour a base
  insert <strand> <helix> <index> <length>    insertion (length > 0) or skip (length < 0)
  uninsert <strand> <helix> <index>
  mod <strand> <helix> <index> <name> [seq]   attach a modifier
  unmod <strand> <helix> <index>
  autostaple                                  replace every staple with ones that pair the scaffold
  renumber                                    renumber helices in visiting order`,
	Run: func(cmd *cobra.Command, args []string) {
		runEdit()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

func init() {
	editIn = editCmd.Flags().StringP("input", "i", "-", "design to edit (- for STDIN)")
	editOut = editCmd.Flags().StringP("output", "o", "-", "file to write the edited design to (- for STDOUT)")
	editOps = editCmd.Flags().StringArray("op", nil, "edit to apply (repeatable) - required")
	editLegacy = editCmd.Flags().Bool("legacy", false, "write the untagged legacy layout")
	editCmd.MarkFlagRequired("op")
	RootCmd.AddCommand(editCmd)
}

func runEdit() {
	conf, stop := start("edit")
	defer stop()
	p, err := loadDesign(conf, *editIn)
	misc.ErrorCheck(err)
	p.AddListener(part.ListenerFunc(logEvent))
	for _, op := range *editOps {
		misc.ErrorCheck(applyEdit(p, op))
	}
	misc.ErrorCheck(p.Validate())
	misc.ErrorCheck(writeDesign(*editOut, p, *editLegacy))
}

// logEvent writes a committed edit to the log
func logEvent(e part.Event) {
	log.Printf("\t%s: helices %v, %d base ranges", e.Op, e.Helices, len(e.Ranges))
}

// editArgs parses the integer and strand fields of an edit
type editArgs struct {
	fields []string
	err    error
}

func (a *editArgs) need(n int) bool {
	if a.err == nil && len(a.fields) < n {
		a.err = fmt.Errorf("%s needs %d arguments, got %d", a.fields[0], n-1, len(a.fields)-1)
	}
	return a.err == nil
}

func (a *editArgs) num(i int) int {
	if a.err != nil || i >= len(a.fields) {
		return 0
	}
	v, err := strconv.Atoi(a.fields[i])
	if err != nil {
		a.err = fmt.Errorf("%s: bad number %q", a.fields[0], a.fields[i])
	}
	return v
}

func (a *editArgs) strand(i int) vhelix.StrandType {
	if a.err != nil {
		return vhelix.Scaffold
	}
	st, err := vhelix.ParseStrandType(a.fields[i])
	if err != nil {
		a.err = err
	}
	return st
}

func (a *editArgs) color(i int) int {
	if a.err != nil {
		return vhelix.NoColor
	}
	v, err := strconv.ParseInt(strings.TrimPrefix(a.fields[i], "#"), 16, 32)
	if err != nil || v < 0 || v > 0xffffff {
		a.err = fmt.Errorf("%s: bad colour %q", a.fields[0], a.fields[i])
		return vhelix.NoColor
	}
	return int(v)
}

// applyEdit parses one edit line and applies it to p
func applyEdit(p *part.Part, line string) error {
	a := &editArgs{fields: strings.Fields(line)}
	if len(a.fields) == 0 {
		return fmt.Errorf("empty edit")
	}
	var err error
	switch a.fields[0] {
	case "add":
		if a.need(4) {
			row, col, n := a.num(1), a.num(2), a.num(3)
			if a.err == nil {
				_, err = p.CreateVirtualHelix(lattice.Coord{Row: row, Col: col}, n)
			}
		}
	case "remove":
		if a.need(2) {
			id := a.num(1)
			if a.err == nil {
				err = p.RemoveVirtualHelix(id)
			}
		}
	case "resize":
		if a.need(3) {
			id, n := a.num(1), a.num(2)
			front := len(a.fields) > 3 && a.fields[3] == "front"
			if a.err == nil {
				err = p.ResizeHelix(id, n, front)
			}
		}
	case "xover":
		if a.need(6) {
			st, from, fromIdx, to, toIdx := a.strand(1), a.num(2), a.num(3), a.num(4), a.num(5)
			if a.err == nil {
				err = p.InstallXover(st, from, fromIdx, to, toIdx)
			}
		}
	case "unxover":
		if a.need(4) {
			st, id, idx := a.strand(1), a.num(2), a.num(3)
			if a.err == nil {
				err = p.RemoveXover(st, id, idx)
			}
		}
	case "clear", "connect":
		if a.need(5) {
			st, id, from, to := a.strand(1), a.num(2), a.num(3), a.num(4)
			if a.err == nil {
				if a.fields[0] == "clear" {
					err = p.ClearStrand(id, st, from, to)
				} else {
					err = p.ConnectStrand(id, st, from, to)
				}
			}
		}
	case "color":
		if a.need(5) {
			st, id, idx, c := a.strand(1), a.num(2), a.num(3), a.color(4)
			if a.err == nil {
				err = p.ApplyColor(st, id, idx, c)
			}
		}
	case "insert":
		if a.need(5) {
			st, id, idx, n := a.strand(1), a.num(2), a.num(3), a.num(4)
			if a.err == nil {
				err = p.InstallInsertion(st, id, idx, n)
			}
		}
	case "uninsert", "unmod":
		if a.need(4) {
			st, id, idx := a.strand(1), a.num(2), a.num(3)
			if a.err == nil {
				if a.fields[0] == "uninsert" {
					err = p.RemoveInsertion(st, id, idx)
				} else {
					err = p.RemoveModifier(st, id, idx)
				}
			}
		}
	case "mod":
		if a.need(5) {
			st, id, idx := a.strand(1), a.num(2), a.num(3)
			seq := ""
			if len(a.fields) > 5 {
				seq = a.fields[5]
			}
			if a.err == nil {
				err = p.SetModifier(st, id, idx, a.fields[4], seq)
			}
		}
	case "autostaple":
		err = p.AutoStaple()
	case "renumber":
		err = p.RenumberHelices()
	default:
		return fmt.Errorf("unknown edit %q", a.fields[0])
	}
	if a.err != nil {
		return a.err
	}
	if err != nil {
		return fmt.Errorf("%q: %w", line, err)
	}
	return nil
}

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
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/spf13/cobra"

	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/oligo"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

// the command line arguments
var (
	exportIn       *string // design to export
	exportScaffold *string // FASTA file holding the scaffold sequence
	exportCSV      *string // staple list output
	exportFASTA    *string // FASTA output of every oligo
	exportGFA      *string // GFA strand graph output
)

// the export command (used by cobra)
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the oligos of a design as a staple list, FASTA or a GFA strand graph",
	Long: `Export the oligos of a design as a staple list, FASTA or a GFA strand graph.

If a scaffold sequence is given (the first record of a FASTA file) it is laid along
the first scaffold oligo and the staples take its reverse complement. Otherwise
every base reads N.`,
	Run: func(cmd *cobra.Command, args []string) {
		runExport()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if *exportCSV == "" && *exportFASTA == "" && *exportGFA == "" {
			return fmt.Errorf("nothing to export, set at least one of --csv, --fasta or --gfa")
		}
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

func init() {
	exportIn = exportCmd.Flags().StringP("input", "i", "-", "design to export (- for STDIN)")
	exportScaffold = exportCmd.Flags().String("scaffold", "", "FASTA file with the scaffold sequence")
	exportCSV = exportCmd.Flags().String("csv", "", "file to write the staple list to")
	exportFASTA = exportCmd.Flags().String("fasta", "", "file to write every oligo to as FASTA")
	exportGFA = exportCmd.Flags().String("gfa", "", "file to write the strand graph to as GFA")
	RootCmd.AddCommand(exportCmd)
}

func runExport() {
	conf, stop := start("export")
	defer stop()
	p, err := loadDesign(conf, *exportIn)
	misc.ErrorCheck(err)
	scaffolds, err := oligo.Collect(p, vhelix.Scaffold)
	misc.ErrorCheck(err)
	staples, err := oligo.Collect(p, vhelix.Staple)
	misc.ErrorCheck(err)
	log.Printf("\tscaffold oligos: %d", len(scaffolds))
	log.Printf("\tstaple oligos: %d", len(staples))
	a, err := assignment(p, scaffolds)
	misc.ErrorCheck(err)
	if *exportCSV != "" {
		misc.ErrorCheck(writeTo(*exportCSV, func(w io.Writer) error { return oligo.WriteStapleCSV(w, a, staples) }))
		log.Printf("\tstaple list written to: %v", *exportCSV)
	}
	all := append(append([]*oligo.Oligo{}, scaffolds...), staples...)
	if *exportFASTA != "" {
		misc.ErrorCheck(writeTo(*exportFASTA, func(w io.Writer) error { return oligo.WriteFASTA(w, a, all, conf.FastaWidth) }))
		log.Printf("\tFASTA written to: %v", *exportFASTA)
	}
	if *exportGFA != "" {
		g, err := oligo.BuildGFA(a, all)
		misc.ErrorCheck(err)
		misc.ErrorCheck(writeTo(*exportGFA, func(w io.Writer) error { return oligo.WriteGFA(w, g) }))
		log.Printf("\tGFA written to: %v", *exportGFA)
	}
}

// assignment lays the --scaffold sequence on the first scaffold oligo, or returns a blank one
func assignment(p *part.Part, scaffolds []*oligo.Oligo) (*oligo.Assignment, error) {
	if *exportScaffold == "" {
		return oligo.Blank(p), nil
	}
	if len(scaffolds) == 0 {
		return nil, fmt.Errorf("design has no scaffold to lay a sequence on")
	}
	seq, err := readScaffold(*exportScaffold)
	if err != nil {
		return nil, err
	}
	if len(scaffolds) > 1 {
		log.Printf("\tdesign has %d scaffold oligos, using %s", len(scaffolds), scaffolds[0].Name())
	}
	a, err := oligo.Assign(p, scaffolds[0], seq.Seq)
	if err != nil {
		return nil, err
	}
	log.Printf("\tscaffold %q: %d bases unfilled, %d bases unused", seq.ID, a.Missing, a.Spare)
	return a, nil
}

// readScaffold returns the first record of a FASTA file
func readScaffold(file string) (*linear.Seq, error) {
	if err := misc.CheckExt(file, []string{"fasta", "fa", "fna"}); err != nil {
		return nil, err
	}
	fh, err := misc.Input(file)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	var r io.Reader = fh
	if strings.HasSuffix(file, ".gz") {
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	if !sc.Next() {
		if err := sc.Error(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("no sequence found in %v", file)
	}
	return sc.Seq().(*linear.Seq), nil
}

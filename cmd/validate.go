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
	"io/ioutil"
	"log"

	"github.com/spf13/cobra"

	"github.com/will-rowe/origami/src/codec"
	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/modelerr"
	"github.com/will-rowe/origami/src/oligo"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/vhelix"
)

var validateIn *string // design to check

// the validate command (used by cobra)
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a JSON design loads and that every strand link is consistent",
	Run: func(cmd *cobra.Command, args []string) {
		runValidate()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

func init() {
	validateIn = validateCmd.Flags().StringP("input", "i", "", "JSON design to check - required")
	validateCmd.MarkFlagRequired("input")
	RootCmd.AddCommand(validateCmd)
}

func runValidate() {
	conf, stop := start("validate")
	defer stop()
	misc.ErrorCheck(misc.CheckFile(*validateIn))
	data, err := ioutil.ReadFile(*validateIn)
	misc.ErrorCheck(err)
	opts, err := conf.CodecOptions()
	misc.ErrorCheck(err)
	if err := validate(data, opts...); err != nil {
		misc.ErrorCheck(fmt.Errorf("%s error: %w", modelerr.KindOf(err), err))
	}
	fmt.Println("ok")
}

// validate parses, builds and checks a document, then traces every strand
func validate(data []byte, opts ...codec.Option) error {
	parsed, err := codec.Parse(data, opts...)
	if err != nil {
		return err
	}
	log.Printf("\tschema: %s", parsed.Kind)
	p, err := codec.Build(parsed, opts...)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return traceAll(p)
}

func traceAll(p *part.Part) error {
	for _, st := range vhelix.StrandTypes {
		oligos, err := oligo.Collect(p, st)
		if err != nil {
			return err
		}
		log.Printf("\t%s oligos: %d", st, len(oligos))
	}
	return nil
}

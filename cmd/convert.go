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
	"log"

	"github.com/spf13/cobra"

	"github.com/will-rowe/origami/src/misc"
)

// the command line arguments
var (
	convertIn     *string // design to read
	convertOut    *string // file to write
	convertLegacy *bool   // write the legacy layout
)

// the convert command (used by cobra)
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a design between the current, legacy and msgpack formats",
	Long: `Convert a design between the current, legacy and msgpack formats.

Legacy documents are upgraded on load; use --legacy to write one back out.
A .msgpack output file gets a binary snapshot.`,
	Run: func(cmd *cobra.Command, args []string) {
		runConvert()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

func init() {
	convertIn = convertCmd.Flags().StringP("input", "i", "-", "design to convert (.json or .msgpack, - for STDIN)")
	convertOut = convertCmd.Flags().StringP("output", "o", "", "file to write (.json or .msgpack, - for STDOUT) - required")
	convertLegacy = convertCmd.Flags().Bool("legacy", false, "write the untagged legacy layout")
	convertCmd.MarkFlagRequired("output")
	RootCmd.AddCommand(convertCmd)
}

func runConvert() {
	conf, stop := start("convert")
	defer stop()
	p, err := loadDesign(conf, *convertIn)
	misc.ErrorCheck(err)
	misc.ErrorCheck(writeDesign(*convertOut, p, *convertLegacy))
	log.Printf("\twritten to: %v", *convertOut)
}

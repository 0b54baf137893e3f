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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/store"
)

// the command line arguments
var (
	storeName *string // name of the archived design
	storeIn   *string // design to archive
	storeOut  *string // file to write a retrieved design to
)

// the store command (used by cobra)
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep designs in a local SQLite archive",
	Long: `Keep designs in a local SQLite archive.

The archive is set with --store, ORIGAMI_STORE or the store key of origami.yaml.`,
}

var storePutCmd = &cobra.Command{
	Use:   "put",
	Short: "Archive a design under a name",
	Run: func(cmd *cobra.Command, args []string) {
		runStore("put", func(s *store.Store, conf Config) error {
			p, err := loadDesign(conf, *storeIn)
			if err != nil {
				return err
			}
			name := *storeName
			if name == "" {
				name = p.Name()
			}
			return s.Put(name, p)
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Write an archived design out",
	Run: func(cmd *cobra.Command, args []string) {
		runStore("get", func(s *store.Store, conf Config) error {
			opts, err := conf.CodecOptions()
			if err != nil {
				return err
			}
			p, err := s.Get(*storeName, opts...)
			if err != nil {
				return err
			}
			return writeDesign(*storeOut, p, false)
		})
	},
	PreRunE: needName,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the archived designs",
	Run: func(cmd *cobra.Command, args []string) {
		runStore("list", func(s *store.Store, conf Config) error {
			entries, err := s.List()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tHELICES\tVERSION\tSAVED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.Name, e.Helices, e.Version, e.Saved.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a design from the archive",
	Run: func(cmd *cobra.Command, args []string) {
		runStore("delete", func(s *store.Store, conf Config) error {
			return s.Delete(*storeName)
		})
	},
	PreRunE: needName,
}

func init() {
	storeName = storeCmd.PersistentFlags().StringP("name", "n", "", "name of the archived design")
	storeIn = storePutCmd.Flags().StringP("input", "i", "-", "design to archive (- for STDIN)")
	storeOut = storeGetCmd.Flags().StringP("output", "o", "-", "file to write the design to (- for STDOUT)")
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd)
	RootCmd.AddCommand(storeCmd)
}

func needName(cmd *cobra.Command, args []string) error {
	if *storeName == "" {
		return fmt.Errorf("required flag `name` has not been set")
	}
	return nil
}

// runStore opens the configured archive and runs one store subcommand against it
func runStore(subcommand string, fn func(s *store.Store, conf Config) error) {
	conf, stop := start("store " + subcommand)
	defer stop()
	s, err := store.Open(conf.Store)
	misc.ErrorCheck(err)
	defer s.Close()
	misc.ErrorCheck(fn(s, conf))
}

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
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/version"
)

// the command line arguments
var (
	configFile *string // config file to use instead of the search path
	logFile    *string // log file (STDERR if unset)
	profiling  *bool   // create profile for go pprof
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "origami",
	Short:   "inspect, edit and export DNA origami designs built from virtual helices",
	Version: version.GetVersion(),
	Long: `
#####################################################################################
		origami: a virtual-helix strand model for DNA origami
#####################################################################################

 origami loads DNA origami designs (current and legacy JSON, or msgpack snapshots),
 keeps their scaffold and staple strands consistent while they are edited, and
 exports them as staple lists, FASTA and GFA strand graphs.

 Designs can be kept in a local SQLite archive.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	configFile = RootCmd.PersistentFlags().String("config", "", "config file (default is ./origami.yaml or $HOME/.origami/origami.yaml)")
	logFile = RootCmd.PersistentFlags().String("log", "", "file to write the log to")
	profiling = RootCmd.PersistentFlags().Bool("profiling", false, "create the files needed to profile origami using the go tool pprof")
	RootCmd.PersistentFlags().String("lattice", "honeycomb", "lattice to assume when a legacy design fits both honeycomb and square")
	RootCmd.PersistentFlags().Int("fasta-width", 60, "line width of FASTA output")
	RootCmd.PersistentFlags().String("store", "origami.db", "design archive to use")
	for _, name := range []string{"log", "lattice", "fasta-width", "store"} {
		viper.BindPFlag(name, RootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads the config file and ORIGAMI_ environment variables
func initConfig() {
	if *configFile != "" {
		viper.SetConfigFile(*configFile)
	} else {
		viper.SetConfigName("origami")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.origami")
	}
	viper.SetEnvPrefix("ORIGAMI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			misc.ErrorCheck(fmt.Errorf("can't read config: %v", err))
		}
	}
}

// start sets up profiling and logging for a subcommand and returns its settings.
// The returned func must be deferred.
func start(subcommand string) (Config, func()) {
	conf := NewConfig()
	var stops []func()
	if *profiling {
		p := profile.Start(profile.ProfilePath("./"))
		stops = append(stops, p.Stop)
	}
	if conf.Log != "" {
		logFH := misc.StartLogging(conf.Log)
		log.SetOutput(logFH)
		stops = append(stops, func() { logFH.Close() })
	}
	log.Printf("this is origami (version %s)", version.GetVersion())
	log.Printf("starting the %s subcommand", subcommand)
	return conf, func() {
		log.Printf("finished %s %s", subcommand, misc.PrintMemUsage())
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}
}

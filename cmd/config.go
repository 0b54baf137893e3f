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

	"github.com/spf13/viper"

	"github.com/will-rowe/origami/src/codec"
	"github.com/will-rowe/origami/src/lattice"
)

// Config is the app wide settings, a mix of origami.yaml, ORIGAMI_ env vars and flags
type Config struct {
	// Lattice is used for legacy designs whose size fits both lattices
	Lattice string `mapstructure:"lattice"`
	// Log is the log file, STDERR when empty
	Log string `mapstructure:"log"`
	// FastaWidth is the line width of FASTA output
	FastaWidth int `mapstructure:"fasta-width"`
	// Store is the path to the design archive
	Store string `mapstructure:"store"`
}

// NewConfig returns the settings unmarshalled from viper
func NewConfig() Config {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}
	if c.FastaWidth <= 0 {
		c.FastaWidth = 60
	}
	return c
}

// CodecOptions turns the settings into loader options
func (c Config) CodecOptions() ([]codec.Option, error) {
	opts := []codec.Option{codec.WithLogger(log.Default())}
	if c.Lattice != "" {
		lt, err := lattice.ParseType(c.Lattice)
		if err != nil {
			return nil, err
		}
		opts = append(opts, codec.WithLattice(lt))
	}
	return opts, nil
}

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
	"log"
	"path/filepath"
	"strings"

	"github.com/will-rowe/origami/src/codec"
	"github.com/will-rowe/origami/src/misc"
	"github.com/will-rowe/origami/src/part"
)

// designExts are the file types a design can be read from and written to
var designExts = []string{"json", "msgpack"}

func isSnapshot(file string) bool {
	return strings.HasSuffix(filepath.Base(file), ".msgpack")
}

// loadDesign reads a JSON document (file or STDIN) or a msgpack snapshot
func loadDesign(conf Config, file string) (*part.Part, error) {
	opts, err := conf.CodecOptions()
	if err != nil {
		return nil, err
	}
	if file != "" && file != "-" {
		if err := misc.CheckExt(file, designExts); err != nil {
			return nil, err
		}
	}
	var p *part.Part
	if isSnapshot(file) {
		if err := misc.CheckFile(file); err != nil {
			return nil, err
		}
		p, err = codec.Undump(file, opts...)
	} else {
		var fh io.ReadCloser
		fh, err = misc.Input(file)
		if err != nil {
			return nil, err
		}
		p, err = codec.Decode(fh, opts...)
		fh.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("could not load %v: %w", file, err)
	}
	log.Printf("\tdesign: %q (%s lattice, %d helices)", p.Name(), p.Lattice(), p.Len())
	return p, nil
}

// writeDesign writes p as a current document, a legacy document or, for .msgpack files, a snapshot
func writeDesign(file string, p *part.Part, legacy bool) error {
	if isSnapshot(file) {
		if legacy {
			return fmt.Errorf("legacy designs can only be written as JSON")
		}
		return codec.Dump(file, p)
	}
	var data []byte
	var err error
	if legacy {
		data, err = codec.MarshalLegacy(p)
	} else {
		data, err = codec.Marshal(p)
	}
	if err != nil {
		return err
	}
	return writeTo(file, func(w io.Writer) error {
		_, err := w.Write(append(data, '\n'))
		return err
	})
}

// writeTo opens file (or STDOUT) and hands it to fn
func writeTo(file string, fn func(w io.Writer) error) error {
	fh, err := misc.Output(file)
	if err != nil {
		return err
	}
	if err := fn(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// Package misc holds the small helpers shared by the origami commands.
package misc

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrorCheck is a function to throw error to the log and exit the program
func ErrorCheck(msg error) {
	if msg != nil {
		log.Fatalf("terminated\n\nERROR --> %v\n\n", msg)
	}
}

// CheckRequiredFlags returns an error naming the first required flag that was not set
func CheckRequiredFlags(flags *pflag.FlagSet) error {
	var missing []string
	flags.VisitAll(func(flag *pflag.Flag) {
		ann := flag.Annotations[cobra.BashCompOneRequiredFlag]
		if len(ann) != 0 && ann[0] == "true" && !flag.Changed {
			missing = append(missing, flag.Name)
		}
	})
	if len(missing) != 0 {
		return errors.New("required flag `" + missing[0] + "` has not been set")
	}
	return nil
}

// StartLogging opens (appending) the log file, creating its directory if needed
func StartLogging(logFile string) *os.File {
	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			log.Fatal("can't create specified directory for log")
		}
	}
	logFH, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal(err)
	}
	return logFH
}

// CheckSTDIN is a function to check that STDIN can be read
func CheckSTDIN() error {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return fmt.Errorf("error with STDIN")
	}
	if (stat.Mode() & os.ModeNamedPipe) == 0 {
		return fmt.Errorf("no STDIN found")
	}
	return nil
}

// CheckFile is a function to check that a file can be read
func CheckFile(file string) error {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %v", file)
		}
		return fmt.Errorf("can't access file (check permissions): %v", file)
	}
	return nil
}

// CheckExt checks a file ends in one of exts, looking past a trailing .gz
func CheckExt(file string, exts []string) error {
	name := strings.TrimSuffix(file, ".gz")
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, e := range exts {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("file does not have recognised extension: %v", file)
}

// Input opens a named file, or STDIN for "-" and ""
func Input(file string) (io.ReadCloser, error) {
	if file == "" || file == "-" {
		if err := CheckSTDIN(); err != nil {
			return nil, err
		}
		return io.NopCloser(os.Stdin), nil
	}
	if err := CheckFile(file); err != nil {
		return nil, err
	}
	return os.Open(file)
}

// Output creates a named file, or returns STDOUT for "-" and ""
func Output(file string) (io.WriteCloser, error) {
	if file == "" || file == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("can't create output directory: %v", dir)
		}
	}
	return os.Create(file)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// PrintMemUsage outputs the current, total and OS memory being used. As well as the number
// of garage collection cycles completed.
// lifted from: https://golangcode.com/print-the-current-memory-usage/
func PrintMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("[ Heap Allocations: %vMb, OS Memory: %vMb, Num. GC cycles: %v ]", bToMb(m.HeapAlloc), bToMb(m.Sys), m.NumGC)
}

// bToMb converts bytes to megabytes
func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

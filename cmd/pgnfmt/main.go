// pgnfmt reads PGN games and rewrites them with normalized move numbers,
// SAN text, and line wrapping, optionally stripping tags, comments, NAGs,
// or variations along the way.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chessgame/internal/config"
	"github.com/lgbarn/chessgame/internal/parser"
	"github.com/lgbarn/chessgame/internal/writer"
)

const programVersion = "0.1.0"

var (
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	sevenTagOnly = flag.Bool("7", false, "Output only the seven tag roster")
	noTags       = flag.Bool("notags", false, "Don't output any tags")
	lineLength   = flag.Int("w", 79, "Maximum line length")
	noComments   = flag.Bool("C", false, "Don't output comments")
	noNAGs       = flag.Bool("N", false, "Don't output NAGs")
	noVariations = flag.Bool("V", false, "Don't output variations")
	logFile      = flag.String("logfile", "", "Write diagnostics to this file instead of stderr")
	help         = flag.Bool("h", false, "Show usage")
	version      = flag.Bool("v", false, "Show version")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("pgnfmt version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if *lineLength > 0 {
		cfg.MaxLineLength = uint(*lineLength)
	}
	setupLogFile(cfg)

	out := setupOutputFile(cfg)
	defer closeIfFile(out)

	opts := writerOptions()

	args := flag.Args()
	if len(args) == 0 {
		runOne(os.Stdin, "stdin", out, cfg, opts)
		return
	}
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			fmt.Fprintf(os.Stderr, "pgnfmt: error opening %s: %v\n", filename, err)
			continue
		}
		runOne(file, filename, out, cfg, opts)
		file.Close() //nolint:errcheck,gosec // G104: cleanup on exit
	}
}

// runOne parses every game in r and rewrites it to out, logging any
// warnings and reporting the first hard parse error without aborting the
// rest of the program.
func runOne(r *os.File, name string, out *os.File, cfg *config.Config, opts writer.Options) {
	games, warnings, err := parser.ParseAll(r, cfg)
	for i, perGame := range warnings {
		for _, w := range perGame {
			fmt.Fprintf(cfg.LogWriter, "%s: game %d: %s\n", name, i+1, w.String())
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgnfmt: %s: %v\n", name, err)
	}
	if werr := writer.WriteAll(out, games, cfg, opts); werr != nil {
		fmt.Fprintf(os.Stderr, "pgnfmt: %s: %v\n", name, werr)
	}
}

func writerOptions() writer.Options {
	opts := writer.DefaultOptions()
	switch {
	case *noTags:
		opts.TagFormat = writer.NoTags
	case *sevenTagOnly:
		opts.TagFormat = writer.SevenTagRosterOnly
	}
	if *noComments {
		opts.KeepComments = false
	}
	if *noNAGs {
		opts.KeepNAGs = false
	}
	if *noVariations {
		opts.KeepVariations = false
	}
	return opts
}

func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgnfmt: error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogWriter = file
}

func setupOutputFile(cfg *config.Config) *os.File {
	if *outputFile == "" {
		return os.Stdout
	}

	var file *os.File
	var err error
	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgnfmt: error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	return file
}

func closeIfFile(f *os.File) {
	if f != os.Stdout {
		f.Close() //nolint:errcheck,gosec // G104: cleanup on exit
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pgnfmt [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Reads PGN from stdin or the given files and rewrites it.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

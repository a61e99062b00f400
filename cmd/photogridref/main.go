package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pspoerri/photogridref/internal/config"
	"github.com/pspoerri/photogridref/internal/exif"
	"github.com/pspoerri/photogridref/internal/locate"
	"github.com/pspoerri/photogridref/internal/logging"
	"github.com/pspoerri/photogridref/internal/report"
	"github.com/pspoerri/photogridref/internal/source"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cfg := config.MustLoad()
	os.Exit(run(cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		format      string
		irishLevel  string
		maxMB       int64
		env         string
		showVersion bool
	)

	fs := flag.NewFlagSet("photogridref", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&format, "format", cfg.Format, "Output format: text, json, gridref, en")
	fs.StringVar(&irishLevel, "irish-level", strconv.Itoa(int(cfg.IrishLevel)), "Irish Grid accuracy: 1 (about 2m) or 2 (about 0.4m)")
	fs.Int64Var(&maxMB, "max-mb", cfg.MaxImageBytes>>20, "Largest image accepted, in MB")
	fs.StringVar(&env, "env", cfg.Env, "Logging environment: local, development, production")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: photogridref [flags] <photo.jpg | ->\n\n")
		fmt.Fprintf(stderr, "Print the British or Irish grid reference of a photo's GPS position.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "photogridref %s (commit %s, built %s)\n", version, commit, buildDate)
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if maxMB <= 0 || maxMB > config.MaxImageMB {
		fmt.Fprintf(stderr, "Error: -max-mb must be between 1 and %d\n", config.MaxImageMB)
		return 1
	}

	log := logging.NewWithWriter(env, stderr)

	level, err := locate.ParseIrishLevel(irishLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	enc, err := report.NewEncoder(format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	path := fs.Arg(0)
	var img *source.Image
	if path == "-" {
		img, err = source.Read("stdin", stdin, maxMB<<20)
	} else {
		img, err = source.Open(path, maxMB<<20)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer img.Close()

	loc, err := exif.Parse(img.Data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", img.Path, err)
		return 1
	}

	res, err := locate.Route(loc, locate.Options{IrishLevel: level, Logger: log})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	name := img.Path
	if path == "-" {
		name = ""
	}
	if err := enc.Encode(stdout, report.New(name, loc, res)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

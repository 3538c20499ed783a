package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/sigframe"
	"github.com/arloliu/sigframe/capture"
	"github.com/arloliu/sigframe/config"
	"github.com/arloliu/sigframe/measure"
)

func runMeasure(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfgPath := fs.String("config", "", "TOML or YAML config file")
	names := fs.String("m", "", "comma-separated measurements (default: from config, else all)")
	strict := fs.Bool("strict", false, "validate every capture line against the event schema")
	verbose := fs.Bool("v", false, "debug logging")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sigframe measure [flags] <capture>\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nMeasurements:\n")
		for _, m := range measure.All() {
			fmt.Fprintf(stderr, "  %s\n", m)
		}
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: exactly one capture file required\n\n")
		fs.Usage()
		return exitUsage
	}

	log := newLogger(stderr, *verbose)

	var extra []config.Option
	if *names != "" {
		extra = append(extra, config.WithMeasurementNames(strings.Split(*names, ",")...))
	}

	cfg, err := loadConfig(*cfgPath, extra...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	requested := cfg.Measurements()
	if requested.Len() == 0 {
		requested = measure.NewSet(measure.All()...)
	}

	input := fs.Arg(0)
	log.Debug("measuring capture", "input", input, "measurements", requested.String())

	r, err := capture.Open(input, readerOptions(*strict)...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	res, err := sigframe.Measure(requested, r.All())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Map()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	log.Info("measure finished", "input", input, "values", res.Len())

	return exitOK
}

// cmd/airplot/main.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// airplot draws the airspaces of an OpenAir file as SVG.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/airspace-tools/aircheck/airspace"
	"github.com/airspace-tools/aircheck/config"
	"github.com/airspace-tools/aircheck/log"
	"github.com/airspace-tools/aircheck/openair"
	"github.com/airspace-tools/aircheck/planar"
	"github.com/airspace-tools/aircheck/plot"
	"github.com/airspace-tools/aircheck/util"

	"github.com/apenwarr/fixconsole"
	"github.com/pkg/browser"
)

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	noArc         = flag.Bool("n", false, "resolve arcs as straight lines")
	fastArc       = flag.Bool("f", false, "resolve arcs in 10 degree steps")
	showCoords    = flag.Bool("c", false, "label points with their coordinates")
	intersections = flag.Bool("i", false, "show intersections between airspaces")
	outFile       = flag.String("out", "airspace.svg", "output file")
	width         = flag.Int("width", 1200, "image width in pixels")
	openBrowser   = flag.Bool("open", false, "open the plot in the browser")
	configFile    = flag.String("config", "", "configuration file (default: $AIRCHECK_CONFIG or "+config.DefaultFile+")")
	logLevel      = flag.String("loglevel", "", "logging level: debug, info, warn, error")
	logDir        = flag.String("logdir", "", "log file directory")
	only          stringList
)

func init() {
	flag.Var(&only, "o", "only show the airspace with the given name:class (may be repeated)")
}

func errorExit(lg *log.Logger, msg string, err error) {
	if err == nil {
		return
	}
	lg.Errorf("%s: %v", msg, err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: airplot [flags] <file | gs://bucket/object | s3://bucket/key>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	cfg, err := config.Load(*configFile)
	errorExit(nil, "config", err)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.NoArc = *noArc
		case "f":
			cfg.FastArc = *fastArc
		case "loglevel":
			cfg.LogLevel = *logLevel
		case "logdir":
			cfg.LogDir = *logDir
		}
	})

	lg := log.New(cfg.LogLevel, cfg.LogDir)
	defer lg.CatchAndReportCrash()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ic, err := cfg.InputConfig()
	errorExit(lg, "config", err)
	data, err := util.ReadInput(ctx, input, ic)
	errorExit(lg, "reading input", err)
	f, err := openair.Read(data)
	errorExit(lg, input, err)

	records := f.Records
	if len(only) > 0 {
		records = slices.DeleteFunc(slices.Clone(records), func(r *airspace.Record) bool {
			name, _ := r.DisplayName()
			return !slices.Contains(only, name)
		})
		if len(records) == 0 {
			errorExit(lg, "-o", fmt.Errorf("no airspace matches %s", only.String()))
		}
	}

	opts := cfg.Options()
	engine := planar.Default()
	checker := airspace.NewChecker(records, nil, airspace.NewReport(io.Discard, opts, lg), engine, lg)
	errorExit(lg, "resolve", checker.Resolve())

	var overlaps []airspace.Overlap
	if *intersections {
		checker.CheckHeights()
		overlaps, err = checker.Overlaps(ctx)
		errorExit(lg, "overlaps", err)
		lg.Infof("%d overlapping pairs", len(overlaps))
	}

	out, err := os.Create(*outFile)
	errorExit(lg, "plot", err)
	err = plot.Write(out, records, overlaps, engine, plot.Options{
		Width:         *width,
		ShowCoords:    *showCoords,
		Intersections: *intersections,
		Title:         input,
	})
	errorExit(lg, *outFile, err)
	errorExit(lg, *outFile, out.Close())

	fmt.Printf("wrote %s\n", *outFile)
	if *openBrowser {
		errorExit(lg, "browser", browser.OpenFile(*outFile))
	}
}

// cmd/aircheck/main.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// aircheck checks OpenAir airspace files for geometric consistency.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"time"

	"github.com/airspace-tools/aircheck/airspace"
	"github.com/airspace-tools/aircheck/config"
	"github.com/airspace-tools/aircheck/log"
	"github.com/airspace-tools/aircheck/openair"
	"github.com/airspace-tools/aircheck/planar"
	"github.com/airspace-tools/aircheck/util"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"
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
	distance   = flag.Float64("d", 0, "distance in meters below which points are reported as close (default 100)")
	point      = flag.String("p", "", "list the boundary points close to the given coordinate and exit")
	fixClosing = flag.Bool("F", false, "write a copy of the input with open airspaces closed and exit")
	errorsOnly = flag.Bool("e", false, "only print errors; warnings are still counted")
	fastArc    = flag.Bool("f", false, "resolve arcs in 10 degree steps")
	noArc      = flag.Bool("n", false, "resolve arcs as straight lines")
	lenient    = flag.Bool("lenient", false, "accept MSL, GND and SFC as height references")
	workers    = flag.Int("workers", 0, "number of goroutines used for the overlap check (default: number of CPUs)")
	configFile = flag.String("config", "", "configuration file (default: $AIRCHECK_CONFIG or "+config.DefaultFile+")")
	logLevel   = flag.String("loglevel", "", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	jsonFile   = flag.String("json", "", "also write the results as JSON to the given file")
	useCache   = flag.Bool("cache", false, "cache resolved boundaries between runs")
	dump       = flag.Bool("dump", false, "dump the parsed airspaces")
	ignore     stringList
)

func init() {
	flag.Var(&ignore, "i", "ignore problems with the given message (may be repeated)")
}

func errorExit(lg *log.Logger, msg string, err error) {
	if err == nil {
		return
	}
	lg.Errorf("%s: %v", msg, err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// applyFlags overrides the configuration with the flags that were given
// on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.Distance = *distance
		case "e":
			cfg.ErrorsOnly = *errorsOnly
		case "f":
			cfg.FastArc = *fastArc
		case "n":
			cfg.NoArc = *noArc
		case "lenient":
			cfg.LenientReferences = *lenient
		case "workers":
			cfg.Workers = *workers
		case "loglevel":
			cfg.LogLevel = *logLevel
		case "logdir":
			cfg.LogDir = *logDir
		case "cache":
			cfg.Cache = *useCache
		case "i":
			cfg.Ignore = append(cfg.Ignore, ignore...)
		}
	})
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: aircheck [flags] <file | gs://bucket/object | s3://bucket/key>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	cfg, err := config.Load(*configFile)
	errorExit(nil, "config", err)
	applyFlags(cfg)

	lg := log.New(cfg.LogLevel, cfg.LogDir)
	defer lg.CatchAndReportCrash()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)
	lg = lg.With("input", input)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ic, err := cfg.InputConfig()
	errorExit(lg, "config", err)

	data, err := util.ReadInput(ctx, input, ic)
	errorExit(lg, "reading input", err)

	f, err := openair.Read(data)
	errorExit(lg, input, err)
	lg.Infof("%s: read %d airspaces from %d lines", input, len(f.Records), len(f.Lines))

	if *dump {
		godump.Dump(f.Records)
	}

	if *fixClosing {
		os.Exit(writeFixed(lg, input, f))
	}

	opts := cfg.Options()
	report := airspace.NewReport(os.Stdout, opts, lg)
	checker := airspace.NewChecker(f.Records, f.Lines, report, planar.Default(), lg)

	if *point != "" {
		p, err := openair.ParseCoordinate(*point)
		errorExit(lg, "-p", err)
		checker.FindNearPoint(p)
		os.Exit(0)
	}

	var rc *airspace.ResolutionCache
	var oc *util.ObjectCache
	if cfg.Cache {
		if oc, err = util.UserObjectCache(); err != nil {
			lg.Warnf("cache: %v", err)
		} else if rc, err = airspace.NewResolutionCache(oc, data, airspace.NewResolver(opts), lg); err != nil {
			lg.Warnf("cache: %v", err)
		} else {
			rc.Load(f.Records)
		}
	}

	start := time.Now()
	errorExit(lg, "check", checker.Run(ctx))
	lg.Infof("checks took %s", time.Since(start))

	if rc != nil {
		if err := rc.Store(f.Records); err != nil {
			lg.Warnf("cache: %v", err)
		} else if err := oc.Cull(cfg.CacheMaxMB << 20); err != nil {
			lg.Warnf("cache: %v", err)
		}
	}

	if *jsonFile != "" {
		jf, err := os.Create(*jsonFile)
		errorExit(lg, "json", err)
		errorExit(lg, "json", report.WriteJSON(jf))
		errorExit(lg, "json", jf.Close())
	}

	if report.PrintSummary() {
		os.Exit(1)
	}
}

// writeFixed writes a copy of the input with all open airspaces closed
// and returns the exit status.
func writeFixed(lg *log.Logger, input string, f *openair.File) int {
	name := input
	if _, _, object, ok := util.SplitObjectURL(input); ok {
		name = path.Base(object)
	}
	name = airspace.FixedFilename(strings.TrimSuffix(name, ".zst"), time.Now())

	out, err := os.Create(name)
	errorExit(lg, "fix", err)

	n, err := airspace.WriteClosed(out, f.Lines, f.Records)
	errorExit(lg, name, err)
	errorExit(lg, name, out.Close())

	fmt.Printf("closed %d airspaces, written to %s\n", n, name)
	return 0
}

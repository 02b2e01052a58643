// Command optir runs the local IR optimizer over a single module: parse,
// optionally promote memory to registers, run the three-iteration
// DCE/Simplify/CSE/RedundantLoad/RedundantStore pipeline, verify, print.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"ssaopt/internal/ir"
	"ssaopt/internal/irfmt"
	"ssaopt/internal/optimize"
	"ssaopt/internal/stats"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("optir", flag.ContinueOnError)
	mem2reg := fs.Bool("mem2reg", false, "run memory-to-register promotion before optimization")
	noCSE := fs.Bool("no-cse", false, "skip the optimization pipeline entirely")
	verbose := fs.Bool("verbose", false, "dump statistics to stderr at exit")
	noVerify := fs.Bool("no", false, "skip post-optimization verification")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: optir [-mem2reg] [-no-cse] [-verbose] [-no] <input> <output>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}
	input, output := fs.Arg(0), fs.Arg(1)

	src, err := os.ReadFile(input)
	if err != nil {
		color.Red("failed to read %s: %s", input, err)
		return 1
	}

	m, err := irfmt.Parse(input, string(src))
	if err != nil {
		irfmt.ReportParseError(string(src), err)
		return 1
	}

	st := optimize.Run(m, optimize.Options{
		Mem2Reg:    *mem2reg,
		DisableCSE: *noCSE,
	})
	summary := stats.Summarize(m)

	if !*noVerify {
		if err := ir.Verify(m); err != nil {
			color.Red("verification failed: %s", err)
			return 1
		}
	}

	if err := os.WriteFile(output, []byte(irfmt.Print(m)), 0o644); err != nil {
		color.Red("failed to write %s: %s", output, err)
		return 1
	}

	if err := writeStatsCSV(output+".stats", st, summary); err != nil {
		color.Red("failed to write stats: %s", err)
		return 1
	}

	if *verbose {
		dumpStats(st, summary)
	}

	color.Green("optimized %s -> %s", input, output)
	return 0
}

func writeStatsCSV(path string, st *stats.Counters, summary []stats.Entry) error {
	var b []byte
	for _, e := range st.NonZero() {
		b = append(b, []byte(fmt.Sprintf("%s,%d\n", e.Name, e.Value))...)
	}
	for _, e := range summary {
		b = append(b, []byte(fmt.Sprintf("%s,%d\n", e.Name, e.Value))...)
	}
	return os.WriteFile(path, b, 0o644)
}

func dumpStats(st *stats.Counters, summary []stats.Entry) {
	for _, e := range st.NonZero() {
		fmt.Fprintf(os.Stderr, "%s: %d\n", e.Name, e.Value)
	}
	for _, e := range summary {
		fmt.Fprintf(os.Stderr, "%s: %d\n", e.Name, e.Value)
	}
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/prodyhq/perfgate"
)

// Exit codes: 0 pass, 1 regression, 2 usage or data error.
const (
	exitPass       = 0
	exitRegression = 1
	exitUsage      = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(out, "Usage: check_perf_regressions <benchmark_json> <thresholds_json>")
		return exitUsage
	}

	reportPath, thresholdsPath := args[0], args[1]
	if _, err := os.Stat(reportPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "Benchmark report not found: %s\n", reportPath)
		return exitUsage
	}

	// Malformed input is not a regression; let it crash.
	report, err := perfgate.LoadReport(reportPath)
	if err != nil {
		panic(err)
	}
	thresholds, err := perfgate.LoadThresholds(thresholdsPath)
	if err != nil {
		if errors.Cause(err) == perfgate.ErrMissingThresholds {
			fmt.Fprintln(out, err)
			return exitUsage
		}
		panic(err)
	}

	summary, err := perfgate.Summarize(report)
	if err != nil {
		fmt.Fprintln(out, err)
		return exitUsage
	}

	fmt.Fprintf(out, "frameDurationCpuMs P95 = %v\n", summary.FrameDurationP95)
	fmt.Fprintf(out, "recomposition P95 = %v\n", summary.RecompositionP95)

	switch thresholds.Check(summary) {
	case perfgate.FrameRegression:
		fmt.Fprintln(out, "Frame-time regression detected")
		return exitRegression
	case perfgate.RecompositionRegression:
		fmt.Fprintln(out, "Recomposition-count regression detected")
		return exitRegression
	}

	fmt.Fprintln(out, "Performance gate passed")
	return exitPass
}

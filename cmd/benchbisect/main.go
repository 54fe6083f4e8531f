// Command benchbisect decides whether the current checkout is good or
// bad for `git bisect run`, by running a benchmark command and judging
// one metric's P95 from the report it writes.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/prodyhq/perfgate"
)

var (
	benchCmd   string
	reportPath string
	metricName string
	p95Range   string
)

func usage() {
	fmt.Println(`Usage:
    benchbisect -cmd "<benchmark command>" -report <report_json> -p95 low,high
    Or: benchbisect -cmd "<benchmark command>" -report <report_json> -metric compose:recompose -p95 low,high`)
	os.Exit(-1)
}

func init() {
	flag.StringVar(&benchCmd, "cmd", "", "benchmark command that writes the report file")
	flag.StringVar(&reportPath, "report", "", "path of the report file the command writes")
	flag.StringVar(&metricName, "metric", perfgate.FrameDurationMetric, "metric name, substring match")
	flag.StringVar(&p95Range, "p95", "", "specify the good,bad P95 range")
}

func main() {
	flag.Parse()

	if benchCmd == "" || reportPath == "" {
		usage()
	}
	from, to := parseNumberPair(p95Range)
	if len(p95Range) > 0 && from >= to {
		fmt.Println("p95 from >= to", from, to, p95Range)
		usage()
	}

	cmd := exec.Command("sh", "-c", benchCmd)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	report, err := perfgate.LoadReport(reportPath)
	if err != nil {
		panic(err)
	}

	p95, ok := metricP95(report, metricName)
	if !ok {
		fmt.Println("metric not found in report:", metricName)
		os.Exit(-1)
	}

	if len(p95Range) > 0 {
		os.Exit(goodOrBad(p95, from, to))
	}

	fmt.Printf("%s P95 = %v\n", metricName, p95)
}

// metricP95 returns the worst P95 across entries for metrics whose
// name contains the given name.
func metricP95(r *perfgate.Report, name string) (v float64, ok bool) {
	for _, b := range r.Benchmarks {
		for metric, m := range b.Metrics {
			if !strings.Contains(metric, name) {
				continue
			}
			if !ok || m.P95 > v {
				v = m.P95
			}
			ok = true
		}
	}
	return v, ok
}

func parseNumberPair(str string) (float64, float64) {
	tmp := strings.Split(str, ",")
	if len(tmp) == 2 {
		from, _ := strconv.ParseFloat(tmp[0], 64)
		to, _ := strconv.ParseFloat(tmp[1], 64)
		return from, to
	}
	return 0, 0
}

// Return 1 if the current source is bad (value near to), 0 for a good
// case (value near from).
func goodOrBad(val, from, to float64) int {
	if val > to {
		return 1
	}
	if val < from {
		return 0
	}

	if val > (from+to)/2 {
		return 1
	}
	return 0
}

package perfgate

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// FrameDurationMetric is the Macrobenchmark metric holding CPU time
	// spent producing one rendering frame, in milliseconds.
	FrameDurationMetric = "frameDurationCpuMs"

	// RecompositionSubstring matches any metric counting recompositions
	// of a composable, e.g. "compose:recompose:HomeScreen".
	RecompositionSubstring = "compose:recompose"
)

// Report is the JSON document a Macrobenchmark run emits.
type Report struct {
	Context    Context     `json:"context"`
	Benchmarks []Benchmark `json:"benchmarks"`
}

// Context describes the device the benchmarks ran on. Informational
// only, the gate never reads it.
type Context struct {
	Build        Build `json:"build"`
	CPUCoreCount int   `json:"cpuCoreCount"`
}

type Build struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// Benchmark is one entry of the report's benchmarks sequence.
type Benchmark struct {
	Name           string            `json:"name"`
	ClassName      string            `json:"className"`
	TotalRunTimeNs int64             `json:"totalRunTimeNs"`
	Params         map[string]string `json:"params,omitempty"`
	Metrics        map[string]Metric `json:"metrics"`
}

// Metric holds the percentile distribution of one measured metric. A
// metric present in the report but lacking a percentile decodes that
// field to zero, which still counts as a measurement.
type Metric struct {
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
	Median  float64 `json:"median"`
	P50     float64 `json:"P50"`
	P90     float64 `json:"P90"`
	P95     float64 `json:"P95"`
	P99     float64 `json:"P99"`
}

// LoadReport reads and decodes a benchmark report file.
func LoadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open benchmark report %s", path)
	}
	defer f.Close()

	var r Report
	dec := json.NewDecoder(f)
	if err := dec.Decode(&r); err != nil {
		return nil, errors.Wrapf(err, "decode benchmark report %s", path)
	}
	return &r, nil
}

// FrameDurationP95 returns the entry's frameDurationCpuMs P95. ok is
// false when the entry does not carry the metric.
func (b Benchmark) FrameDurationP95() (float64, bool) {
	m, ok := b.Metrics[FrameDurationMetric]
	return m.P95, ok
}

// RecompositionP95 returns the worst P95 among the entry's
// recomposition-count metrics. ok is false when none match.
func (b Benchmark) RecompositionP95() (v float64, ok bool) {
	for name, m := range b.Metrics {
		if !strings.Contains(name, RecompositionSubstring) {
			continue
		}
		if !ok || m.P95 > v {
			v = m.P95
		}
		ok = true
	}
	return v, ok
}

// FrameDurationP95 returns the worst frameDurationCpuMs P95 across all
// entries. Entries lacking the metric contribute nothing; ok is false
// when no entry carried it.
func (r *Report) FrameDurationP95() (v float64, ok bool) {
	for _, b := range r.Benchmarks {
		p95, exist := b.FrameDurationP95()
		if !exist {
			continue
		}
		if !ok || p95 > v {
			v = p95
		}
		ok = true
	}
	return v, ok
}

// RecompositionP95 returns the worst recomposition-count P95 across all
// entries and all matching metric names.
func (r *Report) RecompositionP95() (v float64, ok bool) {
	for _, b := range r.Benchmarks {
		p95, exist := b.RecompositionP95()
		if !exist {
			continue
		}
		if !ok || p95 > v {
			v = p95
		}
		ok = true
	}
	return v, ok
}

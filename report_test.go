package perfgate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadReport(t *testing.T) {
	path := writeFile(t, "report.json", `{
		"context": {"build": {"brand": "google", "model": "Pixel 7"}, "cpuCoreCount": 8},
		"benchmarks": [
			{
				"name": "startupCompilationBaseline",
				"className": "com.prody.benchmark.StartupBenchmark",
				"totalRunTimeNs": 120000000,
				"metrics": {
					"frameDurationCpuMs": {"minimum": 2.1, "median": 4.5, "P95": 9.7},
					"compose:recompose:HomeScreen": {"P95": 4}
				}
			}
		]
	}`)

	report, err := LoadReport(path)
	require.NoError(t, err)
	require.Len(t, report.Benchmarks, 1)
	assert.Equal(t, "Pixel 7", report.Context.Build.Model)
	assert.Equal(t, 8, report.Context.CPUCoreCount)

	frame, ok := report.FrameDurationP95()
	require.True(t, ok)
	assert.Equal(t, 9.7, frame)

	recompose, ok := report.RecompositionP95()
	require.True(t, ok)
	assert.Equal(t, 4.0, recompose)
}

func TestLoadReportErrors(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	_, err = LoadReport(writeFile(t, "bad.json", `{"benchmarks": [}`))
	assert.Error(t, err)
}

func TestFrameDurationP95MaxAcrossEntries(t *testing.T) {
	report := &Report{Benchmarks: []Benchmark{
		{Name: "a", Metrics: map[string]Metric{FrameDurationMetric: {P95: 12}}},
		{Name: "b", Metrics: map[string]Metric{"gfxFrameTotalMs": {P95: 99}}},
		{Name: "c", Metrics: map[string]Metric{FrameDurationMetric: {P95: 7}}},
	}}

	frame, ok := report.FrameDurationP95()
	require.True(t, ok)
	assert.Equal(t, 12.0, frame)
}

func TestRecompositionP95MaxAcrossEntriesAndNames(t *testing.T) {
	report := &Report{Benchmarks: []Benchmark{
		{Name: "a", Metrics: map[string]Metric{"compose:recompose:Feed": {P95: 3}}},
		{Name: "b", Metrics: map[string]Metric{
			"compose:recompose:Settings": {P95: 7},
			"compose:recompose:Journal":  {P95: 5},
		}},
	}}

	recompose, ok := report.RecompositionP95()
	require.True(t, ok)
	assert.Equal(t, 7.0, recompose)
}

func TestPercentileLookupsMissing(t *testing.T) {
	report := &Report{Benchmarks: []Benchmark{
		{Name: "a", Metrics: map[string]Metric{"memoryHeapSizeKb": {P95: 4000}}},
	}}

	_, ok := report.FrameDurationP95()
	assert.False(t, ok)
	_, ok = report.RecompositionP95()
	assert.False(t, ok)
}

func TestMetricPresentWithoutP95CountsAsZero(t *testing.T) {
	path := writeFile(t, "report.json", `{
		"benchmarks": [
			{"name": "a", "metrics": {
				"frameDurationCpuMs": {"median": 4.5},
				"compose:recompose:Home": {"median": 2}
			}}
		]
	}`)

	report, err := LoadReport(path)
	require.NoError(t, err)

	frame, ok := report.FrameDurationP95()
	require.True(t, ok)
	assert.Zero(t, frame)
}

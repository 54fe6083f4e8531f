package main

import (
	"encoding/json"
	"net/http"
	"path"
	"sort"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/prodyhq/perfgate"
)

func webCommand() cli.Command {
	return cli.Command{
		Name:  "web",
		Usage: "serve trend charts of recorded runs and accept uploads",
		Flags: configFileFlag(dataDirFlag(
			cli.StringFlag{
				Name:  addrFlag,
				Usage: "address to listen on (defaults to the config listen_addr)",
			})...),
		Action: func(c *cli.Context) error {
			conf, err := loadToolConfig(c)
			if err != nil {
				return errors.WithStack(err)
			}
			addr := fallback(c.String(addrFlag), conf.ListenAddr)

			srv, err := newTrendServer(fallback(c.String(dirFlag), conf.DataDir))
			if err != nil {
				return errors.WithStack(err)
			}

			http.HandleFunc("/", srv.frameHandle)
			http.HandleFunc("/recompose", srv.recomposeHandle)
			http.HandleFunc("/upload", srv.uploadHandle)

			grip.Infoln("serving trend charts on", addr)
			return errors.WithStack(http.ListenAndServe(addr, nil))
		},
	}
}

type trendServer struct {
	dataDir string

	mu            sync.RWMutex
	runs          []perfgate.Run
	framePage     *components.Page
	recomposePage *components.Page
}

// trendPoint is one benchmark's P95 value on one run date. Dates are
// YYYY-MM-DD so lexical order is chronological.
type trendPoint struct {
	date  string
	value float64
}

func newTrendServer(dataDir string) (*trendServer, error) {
	runs, err := perfgate.LoadDataDir(dataDir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	srv := &trendServer{dataDir: dataDir, runs: runs}
	srv.regeneratePages()
	return srv, nil
}

func (s *trendServer) frameHandle(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.framePage.Render(w)
}

func (s *trendServer) recomposeHandle(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.recomposePage.Render(w)
}

func (s *trendServer) uploadHandle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method should be POST", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	var run perfgate.Run
	if err := dec.Decode(&run); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sortKey, err := run.SortKey()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outFile := path.Join(s.dataDir, perfgate.FileName(sortKey, run.Commit))
	if err := perfgate.WriteJSONFile(outFile, run); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.runs = append(s.runs, run)
	s.mu.Unlock()
	s.regeneratePages()
	grip.Infoln("accepted uploaded run:", outFile)
}

// regeneratePages rebuilds both pages under the write lock so
// concurrent uploads cannot publish pages from a stale runs snapshot.
func (s *trendServer) regeneratePages() {
	s.mu.Lock()
	defer s.mu.Unlock()

	frameSeries := groupByBenchmark(s.runs, func(b perfgate.Benchmark) (float64, bool) {
		return b.FrameDurationP95()
	})
	recomposeSeries := groupByBenchmark(s.runs, func(b perfgate.Benchmark) (float64, bool) {
		return b.RecompositionP95()
	})
	s.framePage = makeTrendPage(frameSeries, "frameDurationCpuMs P95")
	s.recomposePage = makeTrendPage(recomposeSeries, "recomposition P95")
}

// groupByBenchmark builds one chronological series per benchmark name,
// projecting each entry through extract. Entries where extract reports
// no value are left out of their run's point set.
func groupByBenchmark(runs []perfgate.Run, extract func(perfgate.Benchmark) (float64, bool)) map[string][]trendPoint {
	final := make(map[string][]trendPoint, len(runs))
	for _, run := range runs {
		for _, b := range run.Report.Benchmarks {
			v, ok := extract(b)
			if !ok {
				continue
			}
			final[b.Name] = append(final[b.Name], trendPoint{
				date:  run.Date,
				value: v,
			})
		}
	}
	for _, points := range final {
		sort.Slice(points, func(i, j int) bool {
			return points[i].date < points[j].date
		})
	}
	return final
}

func makeTrendPage(series map[string][]trendPoint, seriesName string) *components.Page {
	page := components.NewPage()

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		points := series[name]
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: name}))

		dates := make([]string, 0, len(points))
		values := make([]opts.BarData, 0, len(points))
		for _, p := range points {
			dates = append(dates, p.date)
			values = append(values, opts.BarData{Value: p.value})
		}

		bar.SetXAxis(dates)
		bar.AddSeries(seriesName, values)

		page.AddCharts(bar)
	}
	return page
}

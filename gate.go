package perfgate

import "github.com/pkg/errors"

// Sentinel errors for reports the gate cannot evaluate. Their text is
// the message the CLI prints, so callers may print them verbatim.
var (
	ErrNoBenchmarks   = errors.New("No benchmark entries found")
	ErrMissingMetrics = errors.New("Missing required metrics (frameDurationCpuMs or compose:recompose)")
)

// Verdict is the outcome of comparing a summary to its thresholds.
type Verdict int

const (
	GatePassed Verdict = iota
	FrameRegression
	RecompositionRegression
)

func (v Verdict) String() string {
	switch v {
	case GatePassed:
		return "passed"
	case FrameRegression:
		return "frame-time regression"
	case RecompositionRegression:
		return "recomposition-count regression"
	}
	return "unknown"
}

// Summary holds the two worst-case percentiles the gate compares.
type Summary struct {
	FrameDurationP95 float64 `json:"frameDurationCpuMsP95"`
	RecompositionP95 float64 `json:"recompositionP95"`
}

// Summarize derives the gate summary from a report. It fails with
// ErrNoBenchmarks on an empty entry sequence and ErrMissingMetrics when
// either required metric never appears.
func Summarize(r *Report) (Summary, error) {
	if len(r.Benchmarks) == 0 {
		return Summary{}, ErrNoBenchmarks
	}

	frame, frameOK := r.FrameDurationP95()
	recompose, recomposeOK := r.RecompositionP95()
	if !frameOK || !recomposeOK {
		return Summary{}, ErrMissingMetrics
	}

	return Summary{
		FrameDurationP95: frame,
		RecompositionP95: recompose,
	}, nil
}

// Check compares a summary against the thresholds. The frame-duration
// check runs first, so a frame regression wins when both metrics
// regress.
func (t Thresholds) Check(s Summary) Verdict {
	if s.FrameDurationP95 > t.FrameDurationCpuMsP95 {
		return FrameRegression
	}
	if s.RecompositionP95 > t.RecompositionCountP95 {
		return RecompositionRegression
	}
	return GatePassed
}

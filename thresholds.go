package perfgate

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ErrMissingThresholds is returned when the thresholds file parses but
// lacks one of its two required keys.
var ErrMissingThresholds = errors.New("Thresholds file missing required keys (frameDurationCpuMsP95 or recompositionCountP95)")

// Thresholds holds the upper bounds the gate enforces. Both fields are
// required in the thresholds file.
type Thresholds struct {
	FrameDurationCpuMsP95 float64 `json:"frameDurationCpuMsP95"`
	RecompositionCountP95 float64 `json:"recompositionCountP95"`
}

// LoadThresholds reads and decodes a thresholds file, rejecting files
// that omit either required key.
func LoadThresholds(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, errors.Wrapf(err, "open thresholds %s", path)
	}

	var raw struct {
		FrameDurationCpuMsP95 *float64 `json:"frameDurationCpuMsP95"`
		RecompositionCountP95 *float64 `json:"recompositionCountP95"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Thresholds{}, errors.Wrapf(err, "decode thresholds %s", path)
	}
	if raw.FrameDurationCpuMsP95 == nil || raw.RecompositionCountP95 == nil {
		return Thresholds{}, ErrMissingThresholds
	}

	return Thresholds{
		FrameDurationCpuMsP95: *raw.FrameDurationCpuMsP95,
		RecompositionCountP95: *raw.RecompositionCountP95,
	}, nil
}

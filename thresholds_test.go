package perfgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadThresholds(t *testing.T) {
	path := writeFile(t, "thresholds.json", `{"frameDurationCpuMsP95": 20, "recompositionCountP95": 12.5}`)

	thresholds, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, 20.0, thresholds.FrameDurationCpuMsP95)
	assert.Equal(t, 12.5, thresholds.RecompositionCountP95)
}

func TestLoadThresholdsMissingKeys(t *testing.T) {
	for name, content := range map[string]string{
		"Empty":           `{}`,
		"OnlyFrame":       `{"frameDurationCpuMsP95": 20}`,
		"OnlyRecompose":   `{"recompositionCountP95": 20}`,
		"WrongKeySpelled": `{"frameDurationP95": 20, "recompositionCountP95": 20}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadThresholds(writeFile(t, "thresholds.json", content))
			require.Error(t, err)
			assert.Equal(t, ErrMissingThresholds, err)
		})
	}
}

func TestLoadThresholdsBadFile(t *testing.T) {
	_, err := LoadThresholds("does/not/exist.json")
	assert.Error(t, err)

	_, err = LoadThresholds(writeFile(t, "thresholds.json", `not json`))
	assert.Error(t, err)
}

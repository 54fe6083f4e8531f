package perfgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "perfgate.yaml", `
data_dir: /var/lib/perfgate
listen_addr: ":9000"
mysql_dsn: user:pass@tcp(db:3306)/perf
thresholds_path: ci/perf_thresholds.json
`)

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/perfgate", conf.DataDir)
	assert.Equal(t, ":9000", conf.ListenAddr)
	assert.Equal(t, "user:pass@tcp(db:3306)/perf", conf.MySQLDSN)
	assert.Equal(t, "ci/perf_thresholds.json", conf.ThresholdsPath)
}

func TestLoadConfigDefaults(t *testing.T) {
	conf, err := LoadConfig(writeFile(t, "perfgate.yaml", `mysql_dsn: dsn`))
	require.NoError(t, err)
	assert.Equal(t, "data", conf.DataDir)
	assert.Equal(t, ":18081", conf.ListenAddr)
	assert.Equal(t, "dsn", conf.MySQLDSN)
	assert.Empty(t, conf.ThresholdsPath)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("does/not/exist.yaml")
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "perfgate.yaml", "\t: bad"))
	assert.Error(t, err)
}

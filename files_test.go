package perfgate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	date := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-14_abc123f.json", FileName(date, "abc123f"))
}

func TestRunSortKey(t *testing.T) {
	key, err := Run{Date: "2026-03-14"}.SortKey()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), key)

	_, err = Run{Date: "14/03/2026"}.SortKey()
	assert.Error(t, err)
}

func TestLoadDataDir(t *testing.T) {
	dir := t.TempDir()

	runs := []Run{
		{Date: "2026-03-13", Commit: "aaa1111", Report: *sampleReport(8, 3)},
		{Date: "2026-03-14", Commit: "bbb2222", Report: *sampleReport(11, 6)},
	}
	for _, run := range runs {
		key, err := run.SortKey()
		require.NoError(t, err)
		require.NoError(t, WriteJSONFile(filepath.Join(dir, FileName(key, run.Commit)), run))
	}

	// Non-run entries must be skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	loaded, err := LoadDataDir(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	commits := []string{loaded[0].Commit, loaded[1].Commit}
	assert.ElementsMatch(t, []string{"aaa1111", "bbb2222"}, commits)
}

func TestLoadDataDirErrors(t *testing.T) {
	_, err := LoadDataDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))
	_, err = LoadDataDir(dir)
	assert.Error(t, err)
}

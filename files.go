package perfgate

import (
	"encoding/json"
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const runDateFormat = "2006-01-02"

// Run is one recorded benchmark run, the unit stored as a JSON file in
// the data directory.
type Run struct {
	Date   string `json:"date"`
	Commit string `json:"commit"`
	Report Report `json:"report"`
}

// SortKey parses the run date for chronological ordering.
func (r Run) SortKey() (time.Time, error) {
	t, err := time.Parse(runDateFormat, r.Date)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse run date %q", r.Date)
	}
	return t, nil
}

// LoadDataDir reads every run file in dir. Subdirectories and files
// without a .json suffix are skipped.
func LoadDataDir(dir string) ([]Run, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read data dir %s", dir)
	}

	res := make([]Run, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		f, err := os.Open(path.Join(dir, e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "open run file %s", e.Name())
		}

		var r Run
		dec := json.NewDecoder(f)
		err = dec.Decode(&r)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "decode run file %s", e.Name())
		}
		res = append(res, r)
	}
	return res, nil
}

// WriteJSONFile encodes data into outputFile, creating or truncating it.
func WriteJSONFile(outputFile string, data interface{}) error {
	out, err := os.Create(outputFile)
	if err != nil {
		return errors.Wrapf(err, "create %s", outputFile)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	return errors.Wrapf(enc.Encode(data), "encode %s", outputFile)
}

// FileName builds the data-dir file name for a run.
func FileName(date time.Time, commit string) string {
	return date.Format(runDateFormat) + "_" + commit + ".json"
}

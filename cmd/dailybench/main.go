// Command dailybench replays git history one commit per day, runs the
// benchmark command at each checkout, and files the resulting report
// into the data directory for the trend web UI.
package main

import (
	"bytes"
	"flag"
	"os/exec"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/mongodb/grip"

	"github.com/prodyhq/perfgate"
)

var (
	benchCmd   string
	reportPath string
	dataDir    string
	maxCommits int
)

func init() {
	flag.StringVar(&benchCmd, "cmd", "", "benchmark command that writes the report file")
	flag.StringVar(&reportPath, "report", "", "path of the report file the command writes")
	flag.StringVar(&dataDir, "dir", "data", "directory to collect run files into")
	flag.IntVar(&maxCommits, "n", 1000, "how many commits of history to scan")
}

func main() {
	flag.Parse()
	if benchCmd == "" || reportPath == "" {
		grip.EmergencyFatal("both -cmd and -report are required")
	}

	c := exec.Command("git", "log", "-n", strconv.Itoa(maxCommits), "--date=short", "--pretty=format:%cd_%h")
	var out bytes.Buffer
	c.Stdout = &out
	if err := c.Run(); err != nil {
		grip.Error(err)
		return
	}

	replay(strings.Split(out.String(), "\n"), gitCheckout, runOnce)
}

// replay visits git log lines newest first, one commit per day. A
// failed checkout skips that date so the report cannot be filed under
// the wrong hash; a failed benchmark run stops the replay.
func replay(lines []string, checkout func(githash string) error, runOnce func(date, githash string) error) {
	var lastDate string
	for _, line := range lines {
		tmp := strings.Split(line, "_")
		if len(tmp) != 2 {
			continue
		}
		date, githash := tmp[0], tmp[1]

		if date == lastDate {
			continue
		}

		if err := checkout(githash); err != nil {
			grip.Errorf("git checkout %s: %v", githash, err)
			continue
		}

		if err := runOnce(date, githash); err != nil {
			grip.Error(err)
			break
		}
		lastDate = date
	}
}

func gitCheckout(githash string) error {
	return exec.Command("git", "checkout", githash).Run()
}

func runOnce(date, githash string) error {
	cmd := exec.Command("sh", "-c", benchCmd)
	grip.Infoln("running command:", benchCmd, "at", date, githash)
	if err := cmd.Run(); err != nil {
		return err
	}

	report, err := perfgate.LoadReport(reportPath)
	if err != nil {
		return err
	}

	run := perfgate.Run{Date: date, Commit: githash, Report: *report}
	sortKey, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	return perfgate.WriteJSONFile(path.Join(dataDir, perfgate.FileName(sortKey, githash)), run)
}

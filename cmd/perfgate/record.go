package main

import (
	"context"
	"path"
	"time"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/prodyhq/perfgate"
)

func recordCommand() cli.Command {
	return cli.Command{
		Name:  "record",
		Usage: "evaluate a benchmark report and store the outcome in gate history",
		Flags: configFileFlag(dataDirFlag(gateFlags(
			cli.StringFlag{
				Name:  commitFlag,
				Usage: "git commit hash the report was produced from",
			},
			cli.StringFlag{
				Name:  dateFlag,
				Value: time.Now().Format("2006-01-02"),
				Usage: "run date in the format YYYY-MM-DD",
			},
			cli.StringFlag{
				Name:  dbURIFlag,
				Usage: "MySQL DSN for the gate history table, e.g. user:pass@tcp(host:3306)/perf",
			})...)...),
		Action: func(c *cli.Context) error {
			conf, err := loadToolConfig(c)
			if err != nil {
				return errors.WithStack(err)
			}
			thresholdsPath := fallback(c.String(thresholdsFlag), conf.ThresholdsPath)
			dsn := fallback(c.String(dbURIFlag), conf.MySQLDSN)
			dir := fallback(c.String(dirFlag), conf.DataDir)
			commit := c.String(commitFlag)
			if commit == "" {
				return errors.New("a commit hash is required to record a run")
			}

			report, err := perfgate.LoadReport(c.String(reportFlag))
			if err != nil {
				return errors.WithStack(err)
			}
			thresholds, err := perfgate.LoadThresholds(thresholdsPath)
			if err != nil {
				return errors.WithStack(err)
			}
			summary, err := perfgate.Summarize(report)
			if err != nil {
				return cli.NewExitError(err.Error(), 2)
			}
			verdict := thresholds.Check(summary)

			date := c.String(dateFlag)
			run := perfgate.Run{Date: date, Commit: commit, Report: *report}
			sortKey, err := run.SortKey()
			if err != nil {
				return errors.WithStack(err)
			}

			outFile := path.Join(dir, perfgate.FileName(sortKey, commit))
			if err := perfgate.WriteJSONFile(outFile, run); err != nil {
				return errors.WithStack(err)
			}
			grip.Infoln("saved run file:", outFile)

			if dsn != "" {
				if err := recordHistory(dsn, perfgate.HistoryEntry{
					Date:             date,
					Commit:           commit,
					FrameDurationP95: summary.FrameDurationP95,
					RecompositionP95: summary.RecompositionP95,
					Passed:           verdict == perfgate.GatePassed,
				}); err != nil {
					return errors.WithStack(err)
				}
				grip.Infoln("recorded gate history row for", date+"_"+commit)
			}

			grip.Infoln("gate verdict:", verdict)
			return nil
		},
	}
}

func recordHistory(dsn string, entry perfgate.HistoryEntry) error {
	store, err := perfgate.OpenHistory(dsn)
	if err != nil {
		return errors.WithStack(err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.Init(ctx); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(store.Record(ctx, entry))
}

package main

import (
	"os"
	"path"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/prodyhq/perfgate"
)

func mergeCommand() cli.Command {
	return cli.Command{
		Name:  "merge",
		Usage: "fold run files from a patch directory into the data directory",
		Flags: configFileFlag(dataDirFlag(
			cli.StringFlag{
				Name:  patchFlag,
				Value: "patch",
				Usage: "directory holding run files to merge",
			})...),
		Action: func(c *cli.Context) error {
			conf, err := loadToolConfig(c)
			if err != nil {
				return errors.WithStack(err)
			}
			dir := fallback(c.String(dirFlag), conf.DataDir)
			return errors.WithStack(mergeRuns(dir, c.String(patchFlag)))
		},
	}
}

func mergeRuns(dataDir, patchDir string) error {
	origin, err := perfgate.LoadDataDir(dataDir)
	if err != nil {
		return errors.WithStack(err)
	}
	patch, err := perfgate.LoadDataDir(patchDir)
	if err != nil {
		return errors.WithStack(err)
	}

	for _, p := range patch {
		patched := false
		for _, o := range origin {
			if p.Date == o.Date && p.Commit == o.Commit {
				if err := patchRun(dataDir, p, o); err != nil {
					return errors.WithStack(err)
				}
				patched = true
			}
		}

		if !patched {
			if err := moveRun(dataDir, patchDir, p); err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return nil
}

// moveRun relocates a patch file whose date and commit are new to the
// data directory.
func moveRun(dataDir, patchDir string, from perfgate.Run) error {
	sortKey, err := from.SortKey()
	if err != nil {
		return errors.WithStack(err)
	}
	fileName := perfgate.FileName(sortKey, from.Commit)
	return errors.Wrapf(
		os.Rename(path.Join(patchDir, fileName), path.Join(dataDir, fileName)),
		"move run file %s", fileName)
}

// patchRun appends benchmark entries the existing run is missing and
// rewrites its data file. Entries already present win over the patch.
func patchRun(dataDir string, from, to perfgate.Run) error {
	changed := false
	for _, b := range from.Report.Benchmarks {
		exist := false
		for _, v := range to.Report.Benchmarks {
			if b.Name == v.Name {
				exist = true
			}
		}
		if exist {
			grip.Infof("skip duplicated benchmark %s in %s - %s", b.Name, from.Date, from.Commit)
			continue
		}

		to.Report.Benchmarks = append(to.Report.Benchmarks, b)
		changed = true
	}

	if !changed {
		return nil
	}

	sortKey, err := to.SortKey()
	if err != nil {
		return errors.WithStack(err)
	}
	fileName := perfgate.FileName(sortKey, to.Commit)
	return errors.WithStack(perfgate.WriteJSONFile(path.Join(dataDir, fileName), to))
}

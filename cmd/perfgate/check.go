package main

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/prodyhq/perfgate"
)

func checkCommand() cli.Command {
	return cli.Command{
		Name:  "check",
		Usage: "compare a benchmark report against thresholds",
		Flags: gateFlags(),
		Action: func(c *cli.Context) error {
			summary, thresholds, err := loadGateInputs(c.String(reportFlag), c.String(thresholdsFlag))
			if err != nil {
				return err
			}

			grip.Infof("frameDurationCpuMs P95 = %v", summary.FrameDurationP95)
			grip.Infof("recomposition P95 = %v", summary.RecompositionP95)

			switch thresholds.Check(summary) {
			case perfgate.FrameRegression:
				return cli.NewExitError("Frame-time regression detected", 1)
			case perfgate.RecompositionRegression:
				return cli.NewExitError("Recomposition-count regression detected", 1)
			}

			grip.Infoln("Performance gate passed")
			return nil
		},
	}
}

func loadGateInputs(reportPath, thresholdsPath string) (perfgate.Summary, perfgate.Thresholds, error) {
	report, err := perfgate.LoadReport(reportPath)
	if err != nil {
		return perfgate.Summary{}, perfgate.Thresholds{}, errors.WithStack(err)
	}
	thresholds, err := perfgate.LoadThresholds(thresholdsPath)
	if err != nil {
		if errors.Cause(err) == perfgate.ErrMissingThresholds {
			return perfgate.Summary{}, perfgate.Thresholds{}, cli.NewExitError(err.Error(), 2)
		}
		return perfgate.Summary{}, perfgate.Thresholds{}, errors.WithStack(err)
	}

	summary, err := perfgate.Summarize(report)
	if err != nil {
		return perfgate.Summary{}, perfgate.Thresholds{}, cli.NewExitError(err.Error(), 2)
	}
	return summary, thresholds, nil
}

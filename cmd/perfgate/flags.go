package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/prodyhq/perfgate"
)

const (
	levelFlag      = "level"
	reportFlag     = "report"
	thresholdsFlag = "thresholds"
	dirFlag        = "dir"
	patchFlag      = "patch"
	addrFlag       = "addr"
	dbURIFlag      = "dbUri"
	commitFlag     = "commit"
	dateFlag       = "date"
	configFlag     = "config"
)

func gateFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  reportFlag,
			Usage: "path to a benchmark report file",
		},
		cli.StringFlag{
			Name:  thresholdsFlag,
			Usage: "path to a thresholds file",
		})
}

func dataDirFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  dirFlag,
		Usage: "directory holding recorded run files (defaults to the config data_dir)",
	})
}

func configFileFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  configFlag,
		Usage: "optional YAML config supplying defaults for the other flags",
	})
}

// loadToolConfig reads the config file named by the config flag, or
// returns the defaults when the flag is unset.
func loadToolConfig(c *cli.Context) (perfgate.Config, error) {
	if file := c.String(configFlag); file != "" {
		conf, err := perfgate.LoadConfig(file)
		return conf, errors.WithStack(err)
	}
	return perfgate.DefaultConfig(), nil
}

// fallback returns the flag value, or the config-supplied default when
// the flag is unset.
func fallback(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

package perfgate

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config carries the settings shared by the perfgate tool commands.
// Every field has a default so an empty file is a valid config.
type Config struct {
	DataDir        string `yaml:"data_dir"`
	ListenAddr     string `yaml:"listen_addr"`
	MySQLDSN       string `yaml:"mysql_dsn"`
	ThresholdsPath string `yaml:"thresholds_path"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		DataDir:    "data",
		ListenAddr: ":18081",
	}
}

// LoadConfig reads a YAML config file, filling unset fields with
// defaults.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrapf(err, "open config %s", path)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "decode config %s", path)
	}

	if conf.DataDir == "" {
		conf.DataDir = DefaultConfig().DataDir
	}
	if conf.ListenAddr == "" {
		conf.ListenAddr = DefaultConfig().ListenAddr
	}
	return conf, nil
}

package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Ritenoob/miniature-enigma/pkg/indicator"
	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

// Config is the indicator setup of one symbol and interval.
type Config struct {
	Symbol   string         `json:"symbol" yaml:"symbol"`
	Interval types.Interval `json:"interval" yaml:"interval"`

	MACD indicator.MACDConfig `json:"macd" yaml:"macd"`
	RSI  indicator.RSIConfig  `json:"rsi" yaml:"rsi"`

	// Seed is the optional historical close prices, oldest first
	Seed []float64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

func Default() *Config {
	return &Config{
		Interval: types.Interval1m,
		MACD:     indicator.DefaultMACDConfig(),
		RSI:      indicator.DefaultRSIConfig(),
	}
}

// Load reads and validates the yaml config file
func Load(configFile string) (*Config, error) {
	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", configFile)
	}

	return Parse(content)
}

func Parse(content []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, errors.Wrap(err, "unable to parse config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.MACD = config.MACD.WithDefaults()
	config.RSI = config.RSI.WithDefaults()
	return config, nil
}

// Validate collects all the config errors instead of stopping at the first one.
func (c *Config) Validate() (err error) {
	if c.Interval != "" {
		if _, e := types.ValidInterval(c.Interval.String()); e != nil {
			err = multierr.Append(err, e)
		}
	}

	err = multierr.Append(err, c.MACD.Validate())
	err = multierr.Append(err, c.RSI.Validate())
	return err
}

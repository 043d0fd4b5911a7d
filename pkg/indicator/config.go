package indicator

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidPeriod    = errors.New("indicator period must be a positive integer")
	ErrInvalidThreshold = errors.New("rsi thresholds must satisfy 0 <= oversold < overbought <= 100")
	ErrInvalidClose     = errors.New("indicator update requires a finite close price")
)

const (
	DefaultMACDFastPeriod   = 12
	DefaultMACDSlowPeriod   = 26
	DefaultMACDSignalPeriod = 9

	DefaultRSIPeriod     = 14
	DefaultRSIOverbought = 70.0
	DefaultRSIOversold   = 30.0
)

// MACDConfig is the period setup of the MACD engine, zero fields fall back to the defaults.
type MACDConfig struct {
	// FastPeriod is the short term period EMA, usually 12
	FastPeriod int `json:"fast" yaml:"fast"`

	// SlowPeriod is the long term period EMA, usually 26
	SlowPeriod int `json:"slow" yaml:"slow"`

	// SignalPeriod is the period of the EMA over the MACD line, usually 9
	SignalPeriod int `json:"signal" yaml:"signal"`
}

func DefaultMACDConfig() MACDConfig {
	return MACDConfig{
		FastPeriod:   DefaultMACDFastPeriod,
		SlowPeriod:   DefaultMACDSlowPeriod,
		SignalPeriod: DefaultMACDSignalPeriod,
	}
}

// StrategyMACDConfig is the 9/23/5 setup used by the ETH perpetual MACD strategy.
func StrategyMACDConfig() MACDConfig {
	return MACDConfig{FastPeriod: 9, SlowPeriod: 23, SignalPeriod: 5}
}

func (c MACDConfig) WithDefaults() MACDConfig {
	if c.FastPeriod == 0 {
		c.FastPeriod = DefaultMACDFastPeriod
	}

	if c.SlowPeriod == 0 {
		c.SlowPeriod = DefaultMACDSlowPeriod
	}

	if c.SignalPeriod == 0 {
		c.SignalPeriod = DefaultMACDSignalPeriod
	}

	return c
}

// Validate checks the config after the defaults are applied.
func (c MACDConfig) Validate() error {
	c = c.WithDefaults()
	if c.FastPeriod < 0 {
		return errors.Wrapf(ErrInvalidPeriod, "macd fast period: %d", c.FastPeriod)
	}

	if c.SlowPeriod < 0 {
		return errors.Wrapf(ErrInvalidPeriod, "macd slow period: %d", c.SlowPeriod)
	}

	if c.SignalPeriod < 0 {
		return errors.Wrapf(ErrInvalidPeriod, "macd signal period: %d", c.SignalPeriod)
	}

	if c.FastPeriod > c.SlowPeriod {
		return errors.Wrapf(ErrInvalidPeriod, "macd fast period %d is longer than slow period %d", c.FastPeriod, c.SlowPeriod)
	}

	return nil
}

// RSIConfig is the setup of the RSI engine. A zero period and nil thresholds fall
// back to the defaults, an explicit 0 threshold is kept.
//
// Overbought and Oversold are not used by the calculation, they are carried for the
// consumers of the RSI value.
type RSIConfig struct {
	Period     int      `json:"period" yaml:"period"`
	Overbought *float64 `json:"overbought,omitempty" yaml:"overbought,omitempty"`
	Oversold   *float64 `json:"oversold,omitempty" yaml:"oversold,omitempty"`
}

func DefaultRSIConfig() RSIConfig {
	return RSIConfig{
		Period:     DefaultRSIPeriod,
		Overbought: Threshold(DefaultRSIOverbought),
		Oversold:   Threshold(DefaultRSIOversold),
	}
}

// Threshold returns a pointer to v, for the RSIConfig literals.
func Threshold(v float64) *float64 {
	return &v
}

func (c RSIConfig) WithDefaults() RSIConfig {
	if c.Period == 0 {
		c.Period = DefaultRSIPeriod
	}

	if c.Overbought == nil {
		c.Overbought = Threshold(DefaultRSIOverbought)
	}

	if c.Oversold == nil {
		c.Oversold = Threshold(DefaultRSIOversold)
	}

	return c
}

func (c RSIConfig) Validate() error {
	c = c.WithDefaults()
	if c.Period < 0 {
		return errors.Wrapf(ErrInvalidPeriod, "rsi period: %d", c.Period)
	}

	overbought, oversold := *c.Overbought, *c.Oversold
	if oversold < 0 || overbought > 100 || oversold >= overbought {
		return errors.Wrapf(ErrInvalidThreshold, "oversold %v, overbought %v", oversold, overbought)
	}

	return nil
}

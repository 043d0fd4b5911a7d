package tracker

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Ritenoob/miniature-enigma/pkg/indicator"
	"github.com/Ritenoob/miniature-enigma/pkg/metrics"
	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

// Snapshot is the indicator state right after one kline was pushed.
type Snapshot struct {
	// Index is the 0-based position of the kline among the klines pushed to the tracker
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`

	MACD      indicator.MACDValue `json:"macd"`
	MACDReady bool                `json:"macdReady"`
	Cross     indicator.CrossType `json:"cross"`

	RSI      float64           `json:"rsi"`
	RSIReady bool              `json:"rsiReady"`
	Zone     indicator.RSIZone `json:"zone"`
}

// Tracker runs one MACD and one RSI engine over the klines of a single symbol and interval.
// It is not safe for concurrent use, push the klines from one goroutine in time order.
type Tracker struct {
	Symbol   string
	Interval types.Interval

	MACD *indicator.MACD
	RSI  *indicator.RSI

	metricsEnabled bool

	pushed int

	lastMACD    indicator.MACDValue
	hasLastMACD bool

	logger *log.Entry
}

func New(symbol string, interval types.Interval, macdConfig indicator.MACDConfig, rsiConfig indicator.RSIConfig, seed []float64) (*Tracker, error) {
	macd, err := indicator.NewMACD(macdConfig, seed...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create macd")
	}

	rsi, err := indicator.NewRSI(rsiConfig, seed...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create rsi")
	}

	// the rsi bootstrap only consumes the first period+1 closes, the macd seed consumes all of them
	if n := rsi.Period + 1; len(seed) > n {
		for _, c := range seed[n:] {
			if _, _, err := rsi.UpdateClose(c); err != nil {
				return nil, errors.Wrap(err, "unable to seed rsi")
			}
		}
	}

	t := &Tracker{
		Symbol:   symbol,
		Interval: interval,
		MACD:     macd,
		RSI:      rsi,
		logger: log.WithFields(log.Fields{
			"symbol":   symbol,
			"interval": interval,
		}),
	}
	t.lastMACD, t.hasLastMACD = macd.Value()
	return t, nil
}

func (t *Tracker) EnableMetrics(enabled bool) {
	t.metricsEnabled = enabled
}

// Accepts reports whether the kline is a closed kline of this tracker.
// Klines without symbol or interval (raw close prices) are accepted when closed.
func (t *Tracker) Accepts(k types.KLine) bool {
	if !k.Closed {
		return false
	}

	if t.Symbol != "" && k.Symbol != "" && k.Symbol != t.Symbol {
		return false
	}

	if t.Interval != "" && k.Interval != "" && k.Interval != t.Interval {
		return false
	}

	return true
}

// PushK feeds the kline to both engines and returns the resulting snapshot.
// The error is only set when the RSI engine rejects the close price, the MACD
// engine skips such a kline silently and the snapshot is still valid.
func (t *Tracker) PushK(k types.KLine) (Snapshot, error) {
	var err error

	if !k.HasClose() && t.metricsEnabled {
		metrics.IncInvalidClose(t.Symbol, t.Interval.String(), "macd")
	}

	t.MACD.Update(k)

	if _, _, rsiErr := t.RSI.Update(k); rsiErr != nil {
		err = rsiErr
		t.logger.WithError(rsiErr).Warnf("rsi rejected kline: %s", k.String())
		if t.metricsEnabled {
			metrics.IncInvalidClose(t.Symbol, t.Interval.String(), "rsi")
		}
	}

	s := t.snapshot(k)
	t.pushed++
	if t.metricsEnabled {
		t.updateMetrics(s)
	}

	return s, err
}

func (t *Tracker) snapshot(k types.KLine) Snapshot {
	s := Snapshot{
		Index: t.pushed,
		Time:  k.EndTime,
		Close: k.Close,
	}

	if v, ok := t.MACD.Value(); ok {
		s.MACD = v
		s.MACDReady = true

		if t.hasLastMACD {
			s.Cross = v.Crossover(t.lastMACD)
		}
		t.lastMACD, t.hasLastMACD = v, true
	}

	if v, ok := t.RSI.Value(); ok {
		s.RSI = v
		s.RSIReady = true
	}
	s.Zone = t.RSI.Zone()

	return s
}

func (t *Tracker) updateMetrics(s Snapshot) {
	interval := t.Interval.String()
	if s.MACDReady {
		metrics.UpdateMACD(t.Symbol, interval, s.MACD.MACD, s.MACD.Signal, s.MACD.Histogram)
	}

	if s.RSIReady {
		metrics.UpdateRSI(t.Symbol, interval, s.RSI)
	}
}

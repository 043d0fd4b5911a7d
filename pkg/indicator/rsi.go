package indicator

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

/*
rsi implements Relative Strength Index (RSI) with Wilder's smoothing

https://www.investopedia.com/terms/r/rsi.asp
https://school.stockcharts.com/doku.php?id=technical_indicators:relative_strength_index_rsi
*/

type RSIZone int

const (
	ZoneUnknown RSIZone = iota
	ZoneOversold
	ZoneNeutral
	ZoneOverbought
)

func (z RSIZone) String() string {
	switch z {
	case ZoneOversold:
		return "oversold"
	case ZoneNeutral:
		return "neutral"
	case ZoneOverbought:
		return "overbought"
	}
	return "unknown"
}

// RSIState is a read-only snapshot for telemetry and debugging.
type RSIState struct {
	Period      int      `json:"period"`
	PrevClose   *float64 `json:"prevClose"`
	AvgGain     *float64 `json:"avgGain"`
	AvgLoss     *float64 `json:"avgLoss"`
	RSI         *float64 `json:"rsi"`
	Initialized bool     `json:"initialized"`
}

//go:generate callbackgen -type RSI
type RSI struct {
	RSIConfig

	prevClose    float64
	hasPrevClose bool

	avgGain, avgLoss float64
	rsi              float64
	initialized      bool

	seedCount                int
	seedGainSum, seedLossSum float64

	updateCallbacks []func(value float64)
}

// NewRSI creates the RSI engine. When at least Period+1 seed closes are given, the
// averages are bootstrapped from the price changes of closes[0:Period+1].
func NewRSI(config RSIConfig, seedCloses ...float64) (*RSI, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := validateCloses(seedCloses); err != nil {
		return nil, err
	}

	inc := &RSI{RSIConfig: config.WithDefaults()}
	if len(seedCloses) >= inc.Period+1 {
		inc.bootstrap(seedCloses)
	}

	return inc, nil
}

func (inc *RSI) bootstrap(closes []float64) {
	var gainSum, lossSum float64
	for i := 1; i <= inc.Period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum += -delta
		}
	}

	inc.avgGain = gainSum / float64(inc.Period)
	inc.avgLoss = lossSum / float64(inc.Period)
	inc.prevClose = closes[inc.Period]
	inc.hasPrevClose = true
	inc.initialized = true
	inc.calculate()
}

// Update feeds one closed kline and returns the RSI once the averages are seeded.
//
// The update that completes the seed window stores the first RSI but still returns false,
// the value is readable from Value right away and returned by Update from the next kline on.
// A kline without a finite close is rejected with ErrInvalidClose and changes nothing.
func (inc *RSI) Update(k types.KLine) (float64, bool, error) {
	if !k.HasClose() {
		return 0, false, errors.Wrapf(ErrInvalidClose, "rsi close: %v", k.Close)
	}

	x := k.Close
	if !inc.hasPrevClose {
		inc.prevClose = x
		inc.hasPrevClose = true
		return 0, false, nil
	}

	change := x - inc.prevClose
	gain := max(change, 0)
	loss := max(-change, 0)

	if !inc.initialized {
		inc.seedGainSum += gain
		inc.seedLossSum += loss
		inc.seedCount++

		if inc.seedCount == inc.Period {
			inc.avgGain = inc.seedGainSum / float64(inc.Period)
			inc.avgLoss = inc.seedLossSum / float64(inc.Period)
			inc.initialized = true
			inc.calculate()
		}

		inc.prevClose = x
		return 0, false, nil
	}

	inc.avgGain = wilder(inc.avgGain, gain, inc.Period)
	inc.avgLoss = wilder(inc.avgLoss, loss, inc.Period)
	inc.prevClose = x
	inc.calculate()

	inc.EmitUpdate(inc.rsi)
	return inc.rsi, true, nil
}

// UpdateClose is the raw close price form of Update.
func (inc *RSI) UpdateClose(x float64) (float64, bool, error) {
	return inc.Update(types.NewKLineFromClose(x))
}

func (inc *RSI) PushK(k types.KLine) {
	if _, _, err := inc.Update(k); err != nil {
		log.WithError(err).Warnf("rsi: skipped kline %s %s", k.Symbol, k.Interval)
	}
}

func (inc *RSI) BindK(target KLineClosedEmitter, symbol string, interval types.Interval) {
	target.OnKLineClosed(types.KLineWith(symbol, interval, inc.PushK))
}

// calculate derives the RSI from the averages. A zero average loss is checked first,
// so flat prices give 100 rather than 0/0.
func (inc *RSI) calculate() {
	if inc.avgLoss == 0 {
		inc.rsi = 100
		return
	}

	if inc.avgGain == 0 {
		inc.rsi = 0
		return
	}

	rs := inc.avgGain / inc.avgLoss
	inc.rsi = 100 - (100 / (1 + rs))
}

func (inc *RSI) Value() (float64, bool) {
	if !inc.initialized {
		return 0, false
	}
	return inc.rsi, true
}

func (inc *RSI) Ready() bool {
	return inc.initialized
}

// Zone classifies the last RSI value against the configured thresholds.
func (inc *RSI) Zone() RSIZone {
	v, ok := inc.Value()
	switch {
	case !ok:
		return ZoneUnknown
	case v >= inc.Overbought():
		return ZoneOverbought
	case v <= inc.Oversold():
		return ZoneOversold
	}
	return ZoneNeutral
}

func (inc *RSI) Overbought() float64 {
	return *inc.RSIConfig.Overbought
}

func (inc *RSI) Oversold() float64 {
	return *inc.RSIConfig.Oversold
}

func (inc *RSI) State() RSIState {
	s := RSIState{
		Period:      inc.Period,
		Initialized: inc.initialized,
	}

	if inc.hasPrevClose {
		s.PrevClose = floatPtr(inc.prevClose)
	}

	if inc.initialized {
		s.AvgGain = floatPtr(inc.avgGain)
		s.AvgLoss = floatPtr(inc.avgLoss)
		s.RSI = floatPtr(inc.rsi)
	}

	return s
}

var _ KLinePusher = &RSI{}
var _ KLineClosedBinder = &RSI{}

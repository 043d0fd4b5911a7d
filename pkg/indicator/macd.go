package indicator

import (
	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

/*
macd implements moving average convergence divergence indicator

Moving Average Convergence Divergence (MACD)
- https://www.investopedia.com/terms/m/macd.asp
- https://school.stockcharts.com/doku.php?id=technical_indicators:macd-histogram

The engine keeps only the last EMA values, every update is O(1).
The fast EMA is seeded first, then the slow EMA from the following closes,
then the signal line adopts the MACD value after SignalPeriod further updates.
*/
type MACDValue struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

type CrossType int

const (
	CrossNone CrossType = iota
	CrossUp
	CrossDown
)

func (c CrossType) String() string {
	switch c {
	case CrossUp:
		return "up"
	case CrossDown:
		return "down"
	}
	return "none"
}

// Crossover compares the histogram of the previous snapshot with this one.
// A histogram moving from <= 0 to > 0 is a cross up, from >= 0 to < 0 a cross down.
func (v MACDValue) Crossover(prev MACDValue) CrossType {
	if prev.Histogram <= 0 && v.Histogram > 0 {
		return CrossUp
	}

	if prev.Histogram >= 0 && v.Histogram < 0 {
		return CrossDown
	}

	return CrossNone
}

// MACDState is a diagnostic snapshot, nil pointers are the values not established yet.
type MACDState struct {
	MACDConfig

	FastEMA   *float64 `json:"fastEMA"`
	SlowEMA   *float64 `json:"slowEMA"`
	Signal    *float64 `json:"signal"`
	MACD      *float64 `json:"macd"`
	Histogram *float64 `json:"histogram"`

	FastSeedCount   int `json:"fastSeedCount"`
	SlowSeedCount   int `json:"slowSeedCount"`
	SignalSeedCount int `json:"signalSeedCount"`
}

//go:generate callbackgen -type MACD
type MACD struct {
	MACDConfig

	alphaFast, alphaSlow, alphaSignal float64

	fastEMA, slowEMA, signalEMA float64
	macd, histogram             float64

	hasFast, hasSlow, hasSignal bool
	hasMACD, hasHistogram       bool

	fastSeedCount, slowSeedCount, signalSeedCount int
	fastSeedSum, slowSeedSum                      float64

	updateCallbacks []func(value MACDValue)
}

// NewMACD creates the MACD engine. When at least SlowPeriod seed closes are given,
// the EMAs are bootstrapped from them and advanced to the last seed close.
func NewMACD(config MACDConfig, seedCloses ...float64) (*MACD, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := validateCloses(seedCloses); err != nil {
		return nil, err
	}

	config = config.WithDefaults()
	inc := &MACD{
		MACDConfig:  config,
		alphaFast:   alphaOf(config.FastPeriod),
		alphaSlow:   alphaOf(config.SlowPeriod),
		alphaSignal: alphaOf(config.SignalPeriod),
	}

	if len(seedCloses) >= config.SlowPeriod {
		inc.seed(seedCloses)
	}

	return inc, nil
}

// seed averages the first FastPeriod and the first SlowPeriod closes, both windows start at index 0.
func (inc *MACD) seed(closes []float64) {
	for i := 0; i < inc.FastPeriod; i++ {
		inc.fastSeedSum += closes[i]
	}
	inc.fastEMA = inc.fastSeedSum / float64(inc.FastPeriod)
	inc.hasFast = true

	for i := 0; i < inc.SlowPeriod; i++ {
		inc.slowSeedSum += closes[i]
	}
	inc.slowEMA = inc.slowSeedSum / float64(inc.SlowPeriod)
	inc.hasSlow = true

	for _, c := range closes[inc.SlowPeriod:] {
		inc.advance(c)

		if !inc.hasSignal {
			inc.signalEMA = inc.macd
			inc.hasSignal = true
		} else {
			inc.signalEMA = ema(inc.signalEMA, inc.macd, inc.alphaSignal)
		}
	}

	if inc.hasSignal {
		inc.histogram = inc.macd - inc.signalEMA
		inc.hasHistogram = true
	}
}

func (inc *MACD) advance(x float64) {
	inc.fastEMA = ema(inc.fastEMA, x, inc.alphaFast)
	inc.slowEMA = ema(inc.slowEMA, x, inc.alphaSlow)
	inc.macd = inc.fastEMA - inc.slowEMA
	inc.hasMACD = true
}

// Update feeds one closed kline. It returns false while the engine is warming up,
// and also for a kline without a finite close, which leaves the state untouched.
func (inc *MACD) Update(k types.KLine) (MACDValue, bool) {
	if !k.HasClose() {
		return MACDValue{}, false
	}

	x := k.Close

	if !inc.hasFast {
		inc.fastSeedSum += x
		inc.fastSeedCount++
		if inc.fastSeedCount == inc.FastPeriod {
			inc.fastEMA = inc.fastSeedSum / float64(inc.FastPeriod)
			inc.hasFast = true
		}
		return MACDValue{}, false
	}

	if !inc.hasSlow {
		inc.slowSeedSum += x
		inc.slowSeedCount++
		if inc.slowSeedCount == inc.SlowPeriod {
			inc.slowEMA = inc.slowSeedSum / float64(inc.SlowPeriod)
			inc.hasSlow = true
		}
		return MACDValue{}, false
	}

	inc.advance(x)

	if !inc.hasSignal {
		inc.signalSeedCount++
		if inc.signalSeedCount == inc.SignalPeriod {
			inc.signalEMA = inc.macd
			inc.hasSignal = true
		}
		return MACDValue{}, false
	}

	inc.signalEMA = ema(inc.signalEMA, inc.macd, inc.alphaSignal)
	inc.histogram = inc.macd - inc.signalEMA
	inc.hasHistogram = true

	v := inc.value()
	inc.EmitUpdate(v)
	return v, true
}

// UpdateClose is the raw close price form of Update.
func (inc *MACD) UpdateClose(x float64) (MACDValue, bool) {
	return inc.Update(types.NewKLineFromClose(x))
}

func (inc *MACD) PushK(k types.KLine) {
	inc.Update(k)
}

func (inc *MACD) BindK(target KLineClosedEmitter, symbol string, interval types.Interval) {
	target.OnKLineClosed(types.KLineWith(symbol, interval, inc.PushK))
}

// Value returns the last MACD, signal and histogram, false before all of them exist.
func (inc *MACD) Value() (MACDValue, bool) {
	if !inc.Ready() {
		return MACDValue{}, false
	}
	return inc.value(), true
}

func (inc *MACD) Ready() bool {
	return inc.hasMACD && inc.hasSignal && inc.hasHistogram
}

func (inc *MACD) value() MACDValue {
	return MACDValue{
		MACD:      inc.macd,
		Signal:    inc.signalEMA,
		Histogram: inc.histogram,
	}
}

func (inc *MACD) State() MACDState {
	s := MACDState{
		MACDConfig:      inc.MACDConfig,
		FastSeedCount:   inc.fastSeedCount,
		SlowSeedCount:   inc.slowSeedCount,
		SignalSeedCount: inc.signalSeedCount,
	}

	if inc.hasFast {
		s.FastEMA = floatPtr(inc.fastEMA)
	}

	if inc.hasSlow {
		s.SlowEMA = floatPtr(inc.slowEMA)
	}

	if inc.hasSignal {
		s.Signal = floatPtr(inc.signalEMA)
	}

	if inc.hasMACD {
		s.MACD = floatPtr(inc.macd)
	}

	if inc.hasHistogram {
		s.Histogram = floatPtr(inc.histogram)
	}

	return s
}

var _ KLinePusher = &MACD{}
var _ KLineClosedBinder = &MACD{}

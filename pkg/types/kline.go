package types

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

var ErrUnsupportedPayload = errors.New("unsupported kline payload")

// KLine is the candle record consumed by the indicators.
//
// Close is NaN when the feed did not carry a numeric close price, the indicators
// decide how to treat such a candle.
type KLine struct {
	Symbol   string   `json:"symbol"`
	Interval Interval `json:"interval"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`

	Closed bool `json:"closed"`
}

// NewKLineFromClose wraps a raw close price into a kline.
func NewKLineFromClose(close float64) KLine {
	return KLine{
		Open:   close,
		Close:  close,
		High:   close,
		Low:    close,
		Closed: true,
	}
}

// HasClose reports whether the close price is a finite number.
func (k KLine) HasClose() bool {
	return !math.IsNaN(k.Close) && !math.IsInf(k.Close, 0)
}

func (k KLine) String() string {
	return fmt.Sprintf("%s %s %s Open: %.8f Close: %.8f High: %.8f Low: %.8f Volume: %.8f",
		k.StartTime.Format("2006-01-02 15:04"),
		k.Symbol, k.Interval, k.Open, k.Close, k.High, k.Low, k.Volume)
}

type KLineCallback func(k KLine)

// KLineWith filters the klines by the given symbol and interval.
// An empty symbol matches every symbol, a kline without interval matches every interval.
func KLineWith(symbol string, interval Interval, callback KLineCallback) KLineCallback {
	return func(k KLine) {
		if (symbol != "" && k.Symbol != symbol) || (k.Interval != "" && k.Interval != interval) {
			return
		}
		callback(k)
	}
}

// ParseKLine parses one feed message into a kline.
//
// The payload is either a bare number (the close price) or an object, both long
// ("close") and short ("c") field names are accepted and numbers may be quoted.
// A missing or non-numeric close gives a kline with NaN close instead of an error.
func ParseKLine(payload []byte) (KLine, error) {
	var parser fastjson.Parser
	val, err := parser.ParseBytes(payload)
	if err != nil {
		return KLine{}, errors.Wrap(err, "failed to parse kline payload: "+string(payload))
	}

	switch val.Type() {
	case fastjson.TypeNumber:
		f, err := val.Float64()
		if err != nil {
			return KLine{}, errors.Wrap(err, "failed to parse close price")
		}
		return NewKLineFromClose(f), nil

	case fastjson.TypeObject:
		return parseKLineObject(val), nil
	}

	return KLine{}, errors.Wrapf(ErrUnsupportedPayload, "%s payload: %s", val.Type(), payload)
}

func parseKLineObject(val *fastjson.Value) KLine {
	k := KLine{
		Symbol:   string(lookup(val, "symbol", "s").GetStringBytes()),
		Interval: Interval(lookup(val, "interval", "i").GetStringBytes()),
		Open:     parseNumber(lookup(val, "open", "o")),
		Close:    parseNumber(lookup(val, "close", "c")),
		High:     parseNumber(lookup(val, "high", "h")),
		Low:      parseNumber(lookup(val, "low", "l")),
		Volume:   parseNumber(lookup(val, "volume", "v")),
		Closed:   true,
	}

	if v := lookup(val, "closed", "x"); v != nil {
		k.Closed = v.GetBool()
	}

	if v := lookup(val, "startTime", "t"); v != nil {
		k.StartTime = time.UnixMilli(v.GetInt64())
	}

	if v := lookup(val, "endTime", "T"); v != nil {
		k.EndTime = time.UnixMilli(v.GetInt64())
	} else if !k.StartTime.IsZero() && k.Interval.Minutes() > 0 {
		k.EndTime = k.StartTime.Add(k.Interval.Duration() - time.Millisecond)
	}

	return k
}

func lookup(val *fastjson.Value, keys ...string) *fastjson.Value {
	for _, key := range keys {
		if v := val.Get(key); v != nil {
			return v
		}
	}
	return nil
}

// parseNumber returns NaN for anything that is not a number or a numeric string
func parseNumber(v *fastjson.Value) float64 {
	if v == nil {
		return math.NaN()
	}

	switch v.Type() {
	case fastjson.TypeNumber:
		f, err := v.Float64()
		if err == nil {
			return f
		}

	case fastjson.TypeString:
		f, err := strconv.ParseFloat(string(v.GetStringBytes()), 64)
		if err == nil {
			return f
		}
	}

	return math.NaN()
}

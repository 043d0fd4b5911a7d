package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

var MACDMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "indicator_macd",
		Help: "the MACD line, fast EMA minus slow EMA",
	}, []string{"symbol", "interval"})

var MACDSignalMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "indicator_macd_signal",
		Help: "the signal line, EMA of the MACD line",
	}, []string{"symbol", "interval"})

var MACDHistogramMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "indicator_macd_histogram",
		Help: "MACD line minus signal line",
	}, []string{"symbol", "interval"})

var RSIMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "indicator_rsi",
		Help: "Wilder relative strength index",
	}, []string{"symbol", "interval"})

var InvalidCloseMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "indicator_invalid_close_total",
		Help: "klines skipped or rejected because the close price is not a number",
	}, []string{"symbol", "interval", "indicator"})

// Register registers the indicator collectors to the given registerer.
func Register(reg prometheus.Registerer) (err error) {
	for _, c := range []prometheus.Collector{
		MACDMetrics,
		MACDSignalMetrics,
		MACDHistogramMetrics,
		RSIMetrics,
		InvalidCloseMetrics,
	} {
		err = multierr.Append(err, reg.Register(c))
	}
	return err
}

func UpdateMACD(symbol, interval string, macd, signal, histogram float64) {
	labels := prometheus.Labels{"symbol": symbol, "interval": interval}
	MACDMetrics.With(labels).Set(macd)
	MACDSignalMetrics.With(labels).Set(signal)
	MACDHistogramMetrics.With(labels).Set(histogram)
}

func UpdateRSI(symbol, interval string, rsi float64) {
	RSIMetrics.With(prometheus.Labels{"symbol": symbol, "interval": interval}).Set(rsi)
}

func IncInvalidClose(symbol, interval, indicator string) {
	InvalidCloseMetrics.With(prometheus.Labels{
		"symbol":    symbol,
		"interval":  interval,
		"indicator": indicator,
	}).Inc()
}

package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags that select the tracked symbol and interval
func PersistentFlags(flags *pflag.FlagSet) {
	flags.String("symbol", "", "the trading pair to track, overrides the config file. e.g, ETHUSDTM, BTCUSDT...")
	flags.String("interval", "", "interval of the kline (candle), overrides the config file. e.g, 1m, 15m, 1h")
}

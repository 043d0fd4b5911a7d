package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ritenoob/miniature-enigma/pkg/cmd/cmdutil"
	"github.com/Ritenoob/miniature-enigma/pkg/indicator"
	"github.com/Ritenoob/miniature-enigma/pkg/metrics"
	"github.com/Ritenoob/miniature-enigma/pkg/tracker"
	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

// cat klines.jsonl | go run ./cmd/indicator stream --symbol ETHUSDTM --interval 1m --metrics
var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "read json lines klines from stdin and log the MACD and RSI values",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		enableMetrics, err := cmd.Flags().GetBool("metrics")
		if err != nil {
			return err
		}

		bind, err := cmd.Flags().GetString("metrics-bind")
		if err != nil {
			return err
		}

		conf, err := loadConfig()
		if err != nil {
			return err
		}

		tr, err := tracker.New(conf.Symbol, conf.Interval, conf.MACD, conf.RSI, conf.Seed)
		if err != nil {
			return err
		}

		if enableMetrics {
			if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
				return errors.Wrap(err, "unable to register metrics")
			}
			tr.EnableMetrics(true)

			srv := serveMetrics(bind)
			defer func() {
				shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancelShutdown()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.WithError(err).Error("metrics server shutdown error")
				}
			}()
		}

		logger := log.WithFields(log.Fields{
			"symbol":   conf.Symbol,
			"interval": conf.Interval,
		})

		lines, err := cmdutil.ReadKLines(ctx, os.Stdin, func(k types.KLine) error {
			if !tr.Accepts(k) {
				return nil
			}

			s, err := tr.PushK(k)
			if err != nil {
				// already logged by the tracker
				return nil
			}

			fields := log.Fields{"close": s.Close}
			if s.MACDReady {
				fields["macd"] = s.MACD.MACD
				fields["signal"] = s.MACD.Signal
				fields["histogram"] = s.MACD.Histogram
			}

			if s.RSIReady {
				fields["rsi"] = s.RSI
				fields["zone"] = s.Zone.String()
			}

			entry := logger.WithFields(fields)
			if s.Cross != indicator.CrossNone {
				entry.Infof("macd crossed %s", s.Cross)
			} else {
				entry.Debug("kline closed")
			}
			return nil
		})

		logger.Infof("stream stopped after %d lines", lines)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func serveMetrics(bind string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              bind,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("serving metrics on %s/metrics", bind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server error")
		}
	}()

	return srv
}

func init() {
	streamCmd.Flags().Bool("metrics", false, "enable the prometheus metrics endpoint")
	streamCmd.Flags().String("metrics-bind", ":9090", "the bind address of the metrics endpoint")
	RootCmd.AddCommand(streamCmd)
}

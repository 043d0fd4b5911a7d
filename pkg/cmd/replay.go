package cmd

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ritenoob/miniature-enigma/pkg/cmd/cmdutil"
	"github.com/Ritenoob/miniature-enigma/pkg/style"
	"github.com/Ritenoob/miniature-enigma/pkg/tracker"
	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

// go run ./cmd/indicator replay --config indicator.yaml --input testdata/closes.jsonl
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replay a json lines kline file through the MACD and RSI engines and print the result table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		input, err := cmd.Flags().GetString("input")
		if err != nil {
			return err
		}

		every, err := cmd.Flags().GetInt("every")
		if err != nil {
			return err
		}

		if input == "" {
			return errors.New("--input option is required")
		}

		conf, err := loadConfig()
		if err != nil {
			return err
		}

		tr, err := tracker.New(conf.Symbol, conf.Interval, conf.MACD, conf.RSI, conf.Seed)
		if err != nil {
			return err
		}

		f, err := os.Open(input)
		if err != nil {
			return errors.Wrapf(err, "unable to open %s", input)
		}
		defer f.Close()

		snapshots, rejected, lines, err := replayKLines(ctx, tr, f)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"lines":    lines,
			"klines":   len(snapshots),
			"rejected": rejected,
		}).Infof("replayed %s", input)

		if every > 1 {
			snapshots = sampleSnapshots(snapshots, every)
		}

		var tableStyle = style.NewDefaultTableStyle()
		withColor := !viper.GetBool("no-color")
		if !withColor {
			tableStyle = nil
		}

		style.RenderSnapshots(cmd.OutOrStdout(), conf.Symbol+" "+conf.Interval.String(), snapshots, tableStyle, withColor)
		return nil
	},
}

// replayKLines pushes the klines of r to the tracker and collects one snapshot per accepted kline.
func replayKLines(ctx context.Context, tr *tracker.Tracker, r io.Reader) (snapshots []tracker.Snapshot, rejected, lines int, err error) {
	lines, err = cmdutil.ReadKLines(ctx, r, func(k types.KLine) error {
		if !tr.Accepts(k) {
			log.Debugf("skipped kline: %s closed=%v", k.String(), k.Closed)
			return nil
		}

		s, err := tr.PushK(k)
		if err != nil {
			rejected++
		}

		snapshots = append(snapshots, s)
		return nil
	})
	return snapshots, rejected, lines, err
}

// sampleSnapshots keeps every n-th ready snapshot and always the last one
func sampleSnapshots(snapshots []tracker.Snapshot, n int) (sampled []tracker.Snapshot) {
	var ready int
	for i, s := range snapshots {
		if !s.MACDReady && !s.RSIReady {
			continue
		}

		if ready%n == 0 || i == len(snapshots)-1 {
			sampled = append(sampled, s)
		}
		ready++
	}
	return sampled
}

func init() {
	replayCmd.Flags().String("input", "", "the json lines file, one close price or kline object per line")
	replayCmd.Flags().Int("every", 1, "print every n-th ready snapshot only")
	RootCmd.AddCommand(replayCmd)
}

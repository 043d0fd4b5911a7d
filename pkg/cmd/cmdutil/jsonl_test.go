package cmdutil

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

func TestReadKLines(t *testing.T) {
	input := strings.Join([]string{
		`# closes of ETHUSDTM`,
		`44.34`,
		``,
		`{"symbol":"ETHUSDTM","interval":"1m","close":44.09}`,
		`{"c":"abc"}`,
		`{not json`,
		`"44.15"`,
		`{"s":"ETHUSDTM","c":"44.15"}`,
	}, "\n")

	var klines []types.KLine
	lines, err := ReadKLines(context.Background(), strings.NewReader(input), func(k types.KLine) error {
		klines = append(klines, k)
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 8, lines)
	if assert.Len(t, klines, 4) {
		assert.Equal(t, 44.34, klines[0].Close)
		assert.Equal(t, "ETHUSDTM", klines[1].Symbol)
		assert.True(t, math.IsNaN(klines[2].Close))
		assert.Equal(t, 44.15, klines[3].Close)
	}
}

func TestReadKLines_StopOnError(t *testing.T) {
	stop := errors.New("stop")
	var count int
	_, err := ReadKLines(context.Background(), strings.NewReader("1\n2\n3\n"), func(k types.KLine) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})

	assert.Equal(t, stop, err)
	assert.Equal(t, 2, count)
}

func TestReadKLines_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadKLines(ctx, strings.NewReader("1\n2\n"), func(k types.KLine) error {
		t.Fatal("no kline is expected after cancel")
		return nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestReadKLines_CancelWhileReaderBlocks(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())

	closeC := make(chan float64, 2)
	errC := make(chan error, 1)
	go func() {
		_, err := ReadKLines(ctx, r, func(k types.KLine) error {
			closeC <- k.Close
			return nil
		})
		errC <- err
	}()

	_, err := io.WriteString(w, "1\n2\n")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, <-closeC)
	assert.Equal(t, 2.0, <-closeC)

	// nothing is written after this, the reader stays blocked
	cancel()

	select {
	case err := <-errC:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("ReadKLines did not return after the context was cancelled")
	}
}

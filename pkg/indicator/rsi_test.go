package indicator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Ritenoob/miniature-enigma/pkg/indicator/mocks"
	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

// test case from https://school.stockcharts.com/doku.php?id=technical_indicators:relative_strength_index_rsi
var stockchartsCloses = []byte(`[44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41, 46.22, 45.64, 46.21, 46.25, 45.71, 46.45, 45.78, 45.35, 44.03, 44.18, 44.22, 44.57, 43.42, 42.66, 43.13]`)

var stockchartsRSI = []float64{
	70.46413502109704,
	66.24961855355505,
	66.48094183471265,
	69.34685316290864,
	66.29471265892624,
	57.91502067008556,
	62.88071830996241,
	63.208788718287764,
	56.01158478954758,
	62.33992931089789,
	54.67097137765515,
	50.386815195114224,
	40.01942379131357,
	41.49263540422282,
	41.902429678458105,
	45.499497238680405,
	37.32277831337995,
	33.090482572723396,
	37.78877198205783,
}

func loadStockchartsCloses(t *testing.T) []float64 {
	var values []float64
	err := json.Unmarshal(stockchartsCloses, &values)
	require.NoError(t, err)
	return values
}

func newTestRSI(t *testing.T, config RSIConfig, seed ...float64) *RSI {
	rsi, err := NewRSI(config, seed...)
	require.NoError(t, err)
	return rsi
}

func Test_RSI_Update(t *testing.T) {
	values := loadStockchartsCloses(t)
	rsi := newTestRSI(t, RSIConfig{Period: 14})

	var got []float64
	for i, price := range values {
		v, ok, err := rsi.UpdateClose(price)
		require.NoError(t, err)

		switch {
		case i < 14:
			assert.False(t, ok, "update #%d", i)
			assert.False(t, rsi.Ready(), "update #%d", i)
			_, hasValue := rsi.Value()
			assert.False(t, hasValue, "update #%d", i)

		case i == 14:
			// the update completing the seed window stores the first RSI without returning it
			assert.False(t, ok)
			assert.True(t, rsi.Ready())
			first, hasValue := rsi.Value()
			assert.True(t, hasValue)
			assert.InDelta(t, stockchartsRSI[0], first, 1e-9)

		default:
			assert.True(t, ok, "update #%d", i)
			got = append(got, v)
		}
	}

	want := stockchartsRSI[1:]
	if assert.Equal(t, len(want), len(got)) {
		for i, v := range want {
			assert.InDelta(t, v, got[i], 1e-9, "Expected rsi[%d] to be %v, but got %v", i, v, got[i])
		}
	}
}

func Test_NewRSI_Seed(t *testing.T) {
	values := loadStockchartsCloses(t)

	streamed := newTestRSI(t, RSIConfig{})
	for _, price := range values[:15] {
		_, _, err := streamed.UpdateClose(price)
		require.NoError(t, err)
	}

	seeded := newTestRSI(t, RSIConfig{}, values[:15]...)
	assert.True(t, seeded.Ready())
	assert.Equal(t, streamed.State(), seeded.State())

	first, ok := seeded.Value()
	assert.True(t, ok)
	assert.InDelta(t, 70.46413502109704, first, 1e-9)

	// both continue with the same Wilder smoothing
	for _, price := range values[15:] {
		a, okA, errA := streamed.UpdateClose(price)
		b, okB, errB := seeded.UpdateClose(price)
		assert.NoError(t, errA)
		assert.NoError(t, errB)
		assert.True(t, okA)
		assert.True(t, okB)
		assert.Equal(t, a, b)
	}
}

func Test_NewRSI_SeedWindow(t *testing.T) {
	values := loadStockchartsCloses(t)

	t.Run("only the first period+1 closes are consumed", func(t *testing.T) {
		rsi := newTestRSI(t, RSIConfig{}, values...)
		s := rsi.State()
		require.NotNil(t, s.PrevClose)
		assert.Equal(t, values[14], *s.PrevClose)
		require.NotNil(t, s.RSI)
		assert.InDelta(t, stockchartsRSI[0], *s.RSI, 1e-9)
	})

	t.Run("too short history is ignored", func(t *testing.T) {
		rsi := newTestRSI(t, RSIConfig{}, values[:14]...)
		assert.False(t, rsi.Ready())
		assert.Equal(t, RSIState{Period: 14}, rsi.State())
	})
}

func Test_RSI_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		prices func(i int) float64
		want   float64
	}{
		{
			name:   "strictly increasing",
			prices: func(i int) float64 { return 100 + float64(i)*1.5 },
			want:   100,
		},
		{
			name:   "strictly decreasing",
			prices: func(i int) float64 { return 100 - float64(i)*0.5 },
			want:   0,
		},
		{
			// zero average loss is checked before zero average gain
			name:   "flat",
			prices: func(i int) float64 { return 42 },
			want:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsi := newTestRSI(t, RSIConfig{Period: 14})
			for i := 0; i < 40; i++ {
				v, ok, err := rsi.UpdateClose(tt.prices(i))
				require.NoError(t, err)
				if ok {
					assert.Equal(t, tt.want, v)
				}
			}

			v, ok := rsi.Value()
			assert.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func Test_RSI_ShortPeriod(t *testing.T) {
	rsi := newTestRSI(t, RSIConfig{Period: 3})

	type step struct {
		price float64
		ok    bool
		want  float64
	}
	steps := []step{
		{price: 1},
		{price: 2},
		{price: 3},
		{price: 4},
		{price: 5, ok: true, want: 100},
		{price: 4, ok: true, want: 66.66666666666666},
		{price: 5, ok: true, want: 77.77777777777777},
	}

	for i, s := range steps {
		v, ok, err := rsi.UpdateClose(s.price)
		require.NoError(t, err)
		assert.Equal(t, s.ok, ok, "step #%d", i)
		if s.ok {
			assert.InDelta(t, s.want, v, 1e-9, "step #%d", i)
		}
	}
}

func Test_RSI_InvalidClose(t *testing.T) {
	values := loadStockchartsCloses(t)
	malformed, err := types.ParseKLine([]byte(`{"close":"abc"}`))
	require.NoError(t, err)

	for _, warmUp := range []int{0, 1, 10, 20} {
		rsi := newTestRSI(t, RSIConfig{})
		for _, price := range values[:warmUp] {
			_, _, err := rsi.UpdateClose(price)
			require.NoError(t, err)
		}

		before := rsi.State()
		beforeValue, beforeOk := rsi.Value()

		_, ok, err := rsi.Update(malformed)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrInvalidClose), "warm up %d", warmUp)

		_, ok, err = rsi.UpdateClose(math.Inf(1))
		assert.False(t, ok)
		assert.Error(t, err)

		assert.Equal(t, before, rsi.State(), "warm up %d", warmUp)

		afterValue, afterOk := rsi.Value()
		assert.Equal(t, beforeOk, afterOk)
		assert.Equal(t, beforeValue, afterValue)
	}
}

func Test_NewRSI_Errors(t *testing.T) {
	_, err := NewRSI(RSIConfig{Period: -14})
	assert.True(t, errors.Is(err, ErrInvalidPeriod))

	_, err = NewRSI(RSIConfig{Overbought: Threshold(20), Oversold: Threshold(80)})
	assert.True(t, errors.Is(err, ErrInvalidThreshold))

	_, err = NewRSI(RSIConfig{Overbought: Threshold(120)})
	assert.True(t, errors.Is(err, ErrInvalidThreshold))

	_, err = NewRSI(RSIConfig{}, 44.34, 44.09, math.NaN())
	assert.True(t, errors.Is(err, ErrInvalidClose))
}

func Test_RSI_Zone(t *testing.T) {
	rsi := newTestRSI(t, RSIConfig{Period: 3})
	assert.Equal(t, 70.0, rsi.Overbought())
	assert.Equal(t, 30.0, rsi.Oversold())
	assert.Equal(t, ZoneUnknown, rsi.Zone())

	for _, price := range []float64{1, 2, 3, 4} {
		_, _, _ = rsi.UpdateClose(price)
	}
	assert.Equal(t, ZoneOverbought, rsi.Zone())

	_, _, _ = rsi.UpdateClose(3)
	_, _, _ = rsi.UpdateClose(2.5)
	v, _ := rsi.Value()
	assert.True(t, v > 30 && v < 70, "rsi %v", v)
	assert.Equal(t, ZoneNeutral, rsi.Zone())

	for _, price := range []float64{2, 1, 0.5} {
		_, _, _ = rsi.UpdateClose(price)
	}
	assert.Equal(t, ZoneOversold, rsi.Zone())
	assert.Equal(t, "oversold", rsi.Zone().String())
}

func Test_RSI_OnUpdate(t *testing.T) {
	values := loadStockchartsCloses(t)
	rsi := newTestRSI(t, RSIConfig{})

	var emitted []float64
	rsi.OnUpdate(func(v float64) {
		emitted = append(emitted, v)
	})

	for _, price := range values {
		_, _, _ = rsi.UpdateClose(price)
	}

	assert.Equal(t, len(stockchartsRSI)-1, len(emitted))
}

func Test_RSI_BindK(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	var emit func(k types.KLine)
	emitter := mocks.NewMockKLineClosedEmitter(mockCtrl)
	emitter.EXPECT().OnKLineClosed(gomock.Any()).Do(func(cb func(k types.KLine)) {
		emit = cb
	}).Times(1)

	rsi := newTestRSI(t, RSIConfig{})
	rsi.BindK(emitter, "ETHUSDTM", types.Interval1h)
	require.NotNil(t, emit)

	values := loadStockchartsCloses(t)
	malformed, err := types.ParseKLine([]byte(`{"symbol":"ETHUSDTM","interval":"1h"}`))
	require.NoError(t, err)

	for _, price := range values {
		emit(types.KLine{Symbol: "ETHUSDTM", Interval: types.Interval1h, Close: price})
		emit(types.KLine{Symbol: "ETHUSDTM", Interval: types.Interval4h, Close: 1})

		// rejected by the engine, PushK only logs it
		emit(malformed)
	}

	v, ok := rsi.Value()
	require.True(t, ok)
	assert.InDelta(t, stockchartsRSI[len(stockchartsRSI)-1], v, 1e-9)
}

func Test_RSI_Deterministic(t *testing.T) {
	values := loadStockchartsCloses(t)
	run := func() (out []float64) {
		rsi := newTestRSI(t, RSIConfig{})
		for _, price := range values {
			if v, ok, _ := rsi.UpdateClose(price); ok {
				out = append(out, v)
			}
		}
		return out
	}

	assert.Equal(t, run(), run())
}

package signal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-market-reporter/internal/entity"
)

func candles(closes ...float64) []entity.Candle {
	out := make([]entity.Candle, len(closes))
	for i, c := range closes {
		out[i] = entity.Candle{
			Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return out
}

func TestAvailableCollapsesNonFinite(t *testing.T) {
	assert.False(t, Available(math.NaN()).Ok())
	assert.False(t, Available(math.Inf(1)).Ok())
	assert.True(t, Available(0).Ok())
}

func TestPct(t *testing.T) {
	got, ok := Pct(Available(105), Available(100)).Float()
	require.True(t, ok)
	assert.InDelta(t, 5.0, got, 1e-9)

	assert.False(t, Pct(Available(105), Available(0)).Ok())
	assert.False(t, Pct(Unavailable(), Available(100)).Ok())
	assert.False(t, Pct(Available(105), Unavailable()).Ok())
}

func TestSpanReturn(t *testing.T) {
	series := candles(100, 101, 102, 103)

	daily, ok := SpanReturn(series, 1).Float()
	require.True(t, ok)
	assert.InDelta(t, (103.0/102.0-1)*100, daily, 1e-9)

	// a 3-bar span needs 4 bars; one fewer is a gap, not a zero.
	assert.True(t, SpanReturn(series, 3).Ok())
	assert.False(t, SpanReturn(series[:3], 3).Ok())
	assert.False(t, SpanReturn(nil, 1).Ok())
}

func TestATRPct(t *testing.T) {
	series := candles(100, 100, 100, 100, 100, 100)

	got, ok := ATRPct(series, 5).Float()
	require.True(t, ok)
	// constant closes: TR = high - low = 2% of close each bar.
	assert.InDelta(t, 2.0, got, 1e-9)

	assert.False(t, ATRPct(series[:5], 5).Ok(), "needs period+1 bars")
}

func TestLongRedCandle(t *testing.T) {
	series := candles(100, 100, 100, 100, 100, 100)
	last := &series[len(series)-1]

	// wide red bar: range 4 vs ATR 2.
	last.Open = 102
	last.Close = 98
	last.High = 102
	last.Low = 98
	assert.Equal(t, 1.0, LongRedCandle(series, 5).Or(-1))

	// same range but green.
	last.Open = 98
	last.Close = 102
	assert.Equal(t, 0.0, LongRedCandle(series, 5).Or(-1))

	assert.False(t, LongRedCandle(series[:4], 5).Ok())
}

func TestBuildGlobalSignalsPartialInputs(t *testing.T) {
	in := GlobalInputs{
		SPXDaily: candles(5000, 5050),
		VIXDaily: candles(18, 20),
	}
	set := BuildGlobalSignals(in)

	spx, ok := set.Get(KeySPXRetD).Float()
	require.True(t, ok)
	assert.InDelta(t, 1.0, spx, 1e-9)

	vix, ok := set.Get(KeyVIXLevel).Float()
	require.True(t, ok)
	assert.Equal(t, 20.0, vix)

	// everything not fed stays a marked gap, including unknown keys.
	assert.False(t, set.Get(KeyNDXRetD).Ok())
	assert.False(t, set.Get(KeyMOVELevel).Ok())
	assert.False(t, set.Get("no_such_key").Ok())
}

func TestBuildSmallCapSignals(t *testing.T) {
	set := BuildSmallCapSignals(candles(700, 710, 705, 715, 720, 725))
	assert.True(t, set.Get(KeyKosdaqRetD).Ok())
	assert.True(t, set.Get(KeyKosdaqATR5Pct).Ok())
	assert.Equal(t, 0.0, set.Get(KeyKosdaqLongRed).Or(-1))
}

func TestBuildSmallCapSignalsShortSeries(t *testing.T) {
	set := BuildSmallCapSignals(candles(700, 710, 705))
	assert.False(t, set.Get(KeyKosdaqRetD).Ok())
	assert.False(t, set.Get(KeyKosdaqATR5Pct).Ok())
	// the flag reads as rule-ready zero, not as a gap.
	assert.Equal(t, 0.0, set.Get(KeyKosdaqLongRed).Or(-1))
}

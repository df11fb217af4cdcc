package composite

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/signal"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func flatRows(n int, index, proxy float64) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			Date:      day(i),
			Index:     index,
			FlowProxy: proxy,
			FX20dPct:  signal.Unavailable(),
			Rate20d:   signal.Unavailable(),
		}
	}
	return rows
}

func TestComputeWindowsFill(t *testing.T) {
	snaps := Compute(flatRows(70, 100, 0), BroadConfig())
	require.Len(t, snaps, 70)

	// day 10: neither flow (20) nor breadth (60) window is full.
	assert.False(t, snaps[10].Flow.Ok())
	assert.False(t, snaps[10].Breadth.Ok())
	assert.False(t, snaps[10].Composite.Ok())
	// macro always resolves, gaps read as zero.
	assert.Equal(t, 0.0, snaps[10].Macro.Or(math.NaN()))
}

func TestComputeFlatSeriesBreadthUnavailable(t *testing.T) {
	// A perfectly flat index has zero 60-day range, so breadth and the
	// composite stay unavailable even after the windows fill.
	snaps := Compute(flatRows(70, 100, 0), BroadConfig())
	last := snaps[len(snaps)-1]
	assert.True(t, last.Flow.Ok())
	assert.True(t, last.Trend.Ok())
	assert.False(t, last.Breadth.Ok())
	assert.False(t, last.Composite.Ok())
}

func TestComputeTrendingSeries(t *testing.T) {
	rows := make([]Row, 80)
	for i := range rows {
		rows[i] = Row{
			Date:      day(i),
			Index:     100 + float64(i),
			FlowProxy: 50,
			FX20dPct:  signal.Available(0),
			Rate20d:   signal.Available(0),
		}
	}
	snaps := Compute(rows, BroadConfig())
	last := snaps[len(snaps)-1]

	require.True(t, last.Composite.Ok())
	assert.Positive(t, last.Trend.Or(0))
	assert.Positive(t, last.Flow.Or(0))
	// rising close sits at the top of its 60-day range.
	assert.Positive(t, last.Breadth.Or(0))
	assert.Equal(t, BandFor(last.Composite), BandStrongBullish)
}

func TestComputeIdempotent(t *testing.T) {
	rows := make([]Row, 80)
	for i := range rows {
		rows[i] = Row{
			Date:      day(i),
			Index:     100 + float64(i),
			FlowProxy: 50,
			FX20dPct:  signal.Available(0.5),
			Rate20d:   signal.Unavailable(),
		}
	}

	first := Compute(rows, BroadConfig())
	second := Compute(rows, BroadConfig())
	assert.Equal(t, first, second)
}

func TestMacroScoreInvertsHeadwind(t *testing.T) {
	weakening := macroScore(Row{FX20dPct: signal.Available(3), Rate20d: signal.Available(2)})
	assert.Negative(t, weakening.Or(0))

	easing := macroScore(Row{FX20dPct: signal.Available(-3), Rate20d: signal.Available(-2)})
	assert.Positive(t, easing.Or(0))

	// clipping saturates at the +/-5 input bound.
	extreme := macroScore(Row{FX20dPct: signal.Available(-100), Rate20d: signal.Available(-100)})
	assert.InDelta(t, 100, extreme.Or(0), 1e-9)
}

func TestForwardFillMacro(t *testing.T) {
	rows := flatRows(3, 100, 0)
	rows[0].FX20dPct = signal.Available(2.5)
	filled := forwardFillMacro(rows)

	assert.InDelta(t, 2.5, filled[2].FX20dPct.Or(0), 1e-9)
	// no earlier rate observation, so the gap stays a gap.
	assert.False(t, filled[2].Rate20d.Ok())
}

func TestRescale(t *testing.T) {
	assert.InDelta(t, 100, rescale(90, 60), 1e-9)
	assert.InDelta(t, -100, rescale(-61, 60), 1e-9)
	assert.InDelta(t, 50, rescale(30, 60), 1e-9)
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		v    float64
		want Band
	}{
		{40, BandStrongBullish},
		{39.9, BandBullish},
		{20, BandBullish},
		{5, BandWeaklyBullish},
		{4.9, BandNeutral},
		{-4.9, BandNeutral},
		{-5, BandWeaklyBearish},
		{-20, BandBearish},
		{-40, BandStrongBearish},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BandFor(signal.Available(tc.v)), "score %v", tc.v)
	}
	assert.Equal(t, BandInsufficientData, BandFor(signal.Unavailable()))
}

func TestSegmentWeightsSumToOne(t *testing.T) {
	for _, cfg := range []Config{BroadConfig(), SmallCapConfig()} {
		w := cfg.Weights
		assert.InDelta(t, 1.0, w.Flow+w.Trend+w.Macro+w.Breadth, 1e-9)
	}
}

func TestFlowProxyInverseSign(t *testing.T) {
	// One inverse ETF rallying on heavy volume should read as bearish.
	candles := make([]entity.Candle, 25)
	for i := range candles {
		candles[i] = entity.Candle{Date: day(i), Close: 100, Volume: 1000}
	}
	candles[24].Close = 110
	candles[24].Volume = 5000

	basket := []ETFSpec{{Ticker: "INV", Weight: 1.5, Sign: -1, VolWindow: 20}}
	points := FlowProxy(map[string][]entity.Candle{"INV": candles}, basket)

	require.Len(t, points, 25)
	last := points[len(points)-1]
	assert.Equal(t, day(24), last.Date)
	assert.Negative(t, last.Value)
	// windows not yet full on early days: contribution is zero.
	assert.Zero(t, points[0].Value)
}

func TestFlowProxyVolumeRatioCap(t *testing.T) {
	candles := make([]entity.Candle, 25)
	for i := range candles {
		candles[i] = entity.Candle{Date: day(i), Close: 100, Volume: 1000}
	}
	candles[24].Close = 101
	candles[24].Volume = 1e9

	basket := []ETFSpec{{Ticker: "T", Weight: 1.0, Sign: 1, VolWindow: 20}}
	points := FlowProxy(map[string][]entity.Candle{"T": candles}, basket)
	last := points[len(points)-1].Value

	// strength is (101/100.2 - 1) * 100 against the 5-day mean, ratio capped at 10.
	ma5 := (100.0*4 + 101.0) / 5.0
	want := (101.0/ma5 - 1.0) * 100.0 * 10.0
	assert.InDelta(t, want, last, 1e-9)
}

func TestTrendCommentBands(t *testing.T) {
	mk := func(vals ...float64) []Snapshot {
		snaps := make([]Snapshot, len(vals))
		for i, v := range vals {
			snaps[i] = Snapshot{Date: day(i), Composite: signal.Available(v)}
		}
		return snaps
	}

	assert.Contains(t, TrendComment(mk(0, 10, 20, 25, 30)), "clear uptrend")
	assert.Contains(t, TrendComment(mk(0, 2, 4, 6, 8)), "mild upward")
	assert.Contains(t, TrendComment(mk(10, 10, 11, 10, 10)), "sideways")
	assert.Contains(t, TrendComment(mk(30, 20, 10, 5, 0)), "clear downtrend")
	assert.Contains(t, TrendComment(mk(10, 8, 6, 4, 2)), "corrective")
	assert.Contains(t, TrendComment(mk(0, 5)), "Not enough")
}

func TestOverallComment(t *testing.T) {
	assert.Contains(t, OverallComment(signal.Available(30), signal.Available(25)), "Both markets lean bullish")
	assert.Contains(t, OverallComment(signal.Available(30), signal.Available(0)), "broad market is relatively strong")
	assert.Contains(t, OverallComment(signal.Available(0), signal.Available(30)), "Small caps are the relatively strong")
	assert.Contains(t, OverallComment(signal.Available(-30), signal.Available(-25)), "Both markets lean bearish")
	assert.Contains(t, OverallComment(signal.Unavailable(), signal.Available(10)), "confidence in this read is low")
}

package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-market-reporter/internal/entity"
)

func window(vols []float64, closes []float64) []entity.Candle {
	out := make([]entity.Candle, len(closes))
	for i := range closes {
		c := closes[i]
		out[i] = entity.Candle{
			Date:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: vols[i],
		}
	}
	return out
}

func flat(n int, close, vol float64) []entity.Candle {
	vols := make([]float64, n)
	closes := make([]float64, n)
	for i := range vols {
		vols[i] = vol
		closes[i] = close
	}
	return window(vols, closes)
}

func TestClassifyNotApplicable(t *testing.T) {
	w := flat(10, 100, 1000)
	assert.Equal(t, NotApplicable, Classify(w, false), "not a 52-week high")
	assert.Equal(t, NotApplicable, Classify(w[:4], true), "window too short")
}

func TestClassifyStrongBreakout(t *testing.T) {
	w := flat(10, 100, 1000)
	last := &w[9]
	last.Open = 100
	last.Close = 104
	last.High = 104
	last.Low = 100
	last.Volume = 2000

	assert.Equal(t, StrongBreakout, Classify(w, true))
}

func TestClassifyStrongBeatsMildOnPriority(t *testing.T) {
	// qualifies for both; strong wins because it is checked first.
	w := flat(10, 100, 1000)
	last := &w[9]
	last.Close = 103.5
	last.High = 103.5
	last.Volume = 1600

	assert.Equal(t, StrongBreakout, Classify(w, true))
}

func TestClassifyMildBreakout(t *testing.T) {
	// up day on merely average volume, move under 3%.
	w := flat(10, 100, 1000)
	last := &w[9]
	last.Close = 101
	last.High = 101
	last.Volume = 1100

	assert.Equal(t, MildBreakout, Classify(w, true))
}

func TestClassifyFalseBreakoutUpperShadow(t *testing.T) {
	// pushed to a high intraday, closed flat: shadow dominates the range.
	w := flat(10, 100, 1000)
	last := &w[9]
	last.Open = 100
	last.Close = 100
	last.High = 110
	last.Low = 99
	last.Volume = 500

	assert.Equal(t, FalseBreakoutUpperShadow, Classify(w, true))
}

func TestClassifyBreakoutFailureCrash(t *testing.T) {
	w := flat(10, 100, 1000)
	last := &w[9]
	last.Open = 100
	last.Close = 96
	last.High = 100
	last.Low = 95.5
	last.Volume = 500

	assert.Equal(t, BreakoutFailureCrash, Classify(w, true))
}

func TestClassifyNeutral(t *testing.T) {
	// small down day with no shadow and no crash.
	w := flat(10, 100, 1000)
	last := &w[9]
	last.Open = 100
	last.Close = 99.5
	last.High = 100
	last.Low = 99.5
	last.Volume = 500

	assert.Equal(t, Neutral, Classify(w, true))
}

func TestUpsideProbabilityAdjustments(t *testing.T) {
	// base 78, +5 premium, +3 dual net buying, +2 near the 52-week low.
	got := UpsideProbability(StrongBreakout, ProbabilityInputs{
		Premium:          true,
		NetForeign:       1,
		NetInstitutional: 1,
		FromLowPct:       100,
	})
	assert.Equal(t, 88.0, got)

	// a 10%+ pop costs 3 points.
	got = UpsideProbability(StrongBreakout, ProbabilityInputs{FromLowPct: 200, ChangePct: 12})
	assert.Equal(t, 75.0, got)
}

func TestUpsideProbabilityClamp(t *testing.T) {
	high := UpsideProbability(StrongBreakout, ProbabilityInputs{
		Premium: true, NetForeign: 1, NetInstitutional: 1, FromLowPct: 0,
	})
	assert.LessOrEqual(t, high, 95.0)

	low := UpsideProbability(BreakoutFailureCrash, ProbabilityInputs{FromLowPct: 200, ChangePct: 15})
	assert.GreaterOrEqual(t, low, 10.0)
	assert.Equal(t, 27.0, low)
}

func TestStrategyTextAndDisplayName(t *testing.T) {
	for _, l := range []Label{StrongBreakout, MildBreakout, FalseBreakoutUpperShadow, BreakoutFailureCrash, Neutral} {
		assert.NotEmpty(t, DisplayName(l))
		assert.NotEmpty(t, StrategyText(l))
	}
	assert.Empty(t, DisplayName(NotApplicable))
}

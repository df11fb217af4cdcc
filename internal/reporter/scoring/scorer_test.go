package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-market-reporter/internal/reporter/signal"
)

func makeSet(vals map[string]float64) signal.Set {
	s := make(signal.Set)
	for k, v := range vals {
		s[k] = signal.Signal{Key: k, Value: signal.Available(v)}
	}
	return s
}

func TestScoreMissingSignalsSkipRules(t *testing.T) {
	for _, table := range [][]Rule{BroadMarketRules(), SmallCapRules()} {
		res := NewScorer(table).Score(makeSet(nil))

		assert.Zero(t, res.Upside)
		assert.Zero(t, res.Downside)
		assert.Empty(t, res.UpsideFirings)
		assert.Empty(t, res.DownsideFirings)
	}
}

func TestScoreIdempotent(t *testing.T) {
	signals := makeSet(map[string]float64{
		signal.KeySPXRetD:   -1.2,
		signal.KeyNDXRetD:   -2.0,
		signal.KeyTNXChgBps: 11,
		signal.KeyVIXLevel:  23,
		signal.KeyMOVELevel: 95,
	})
	scorer := NewScorer(BroadMarketRules())

	first := scorer.Score(signals)
	second := scorer.Score(signals)
	assert.Equal(t, first, second)
}

func TestScoreBoundsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, table := range [][]Rule{BroadMarketRules(), SmallCapRules()} {
		keys := make(map[string]bool)
		for _, r := range table {
			keys[r.Key] = true
			if r.GateKey != "" {
				keys[r.GateKey] = true
			}
		}

		scorer := NewScorer(table)
		for i := 0; i < 500; i++ {
			vals := make(map[string]float64, len(keys))
			for k := range keys {
				vals[k] = (rng.Float64() - 0.5) * 2000
			}
			res := scorer.Score(makeSet(vals))

			assert.GreaterOrEqual(t, res.Upside, 0)
			assert.LessOrEqual(t, res.Upside, 100)
			assert.GreaterOrEqual(t, res.Downside, 0)
			assert.LessOrEqual(t, res.Downside, 100)
			assert.Equal(t, res.Upside > 0, len(res.UpsideFirings) > 0)
			assert.Equal(t, res.Downside > 0, len(res.DownsideFirings) > 0)
		}
	}
}

func TestScoreBroadDownside(t *testing.T) {
	scorer := NewScorer(BroadMarketRules())
	res := scorer.Score(makeSet(map[string]float64{
		signal.KeySPXRetD:   -1.2, // 12
		signal.KeyNDXRetD:   -2.0, // 15
		signal.KeyTNXChgBps: 11,   // 10
		signal.KeyVIXLevel:  23,   // 8
	}))

	assert.Equal(t, 45, res.Downside)
	assert.Zero(t, res.Upside)
	require.Len(t, res.DownsideFirings, 4)
	// firing order equals table order.
	assert.Equal(t, "spx_daily_down", res.DownsideFirings[0].RuleID)
	assert.Equal(t, -1.2, res.DownsideFirings[0].Observed)
}

func TestScoreBothDirectionsIndependent(t *testing.T) {
	scorer := NewScorer(BroadMarketRules())
	res := scorer.Score(makeSet(map[string]float64{
		signal.KeySPXRetD:  2.0, // up 12
		signal.KeyVIXLevel: 30,  // down 8
	}))

	assert.Equal(t, 12, res.Upside)
	assert.Equal(t, 8, res.Downside)
}

func TestScoreClampsAt100(t *testing.T) {
	scorer := NewScorer(BroadMarketRules())
	res := scorer.Score(makeSet(map[string]float64{
		signal.KeySPXRetD:    -10,
		signal.KeySPXRet4H:   -10,
		signal.KeyNDXRetD:    -10,
		signal.KeyNDXRet4H:   -10,
		signal.KeyBTCRetD:    -50,
		signal.KeyBTCRet3H:   -20,
		signal.KeyTNXChgBps:  50,
		signal.KeyVIXLevel:   80,
		signal.KeyVIX9DLevel: 90,
		signal.KeyVIXSpread:  20,
		signal.KeyMOVELevel:  200,
		signal.KeyUSDKRWDiff: 40,
		signal.KeyDXYChg:     3,
		signal.KeyKOSPIRetD:  -8,
	}))

	assert.Equal(t, 100, res.Downside)
	assert.Zero(t, res.Upside)
}

func TestScoreThresholdBoundariesInclusive(t *testing.T) {
	scorer := NewScorer(BroadMarketRules())

	at := scorer.Score(makeSet(map[string]float64{signal.KeySPXRetD: 1.0}))
	assert.Equal(t, 12, at.Upside)

	under := scorer.Score(makeSet(map[string]float64{signal.KeySPXRetD: 0.999}))
	assert.Zero(t, under.Upside)
}

func TestSmallCapGatedRules(t *testing.T) {
	scorer := NewScorer(SmallCapRules())

	// high ATR alone fires nothing: both combo rules are gated on the
	// daily return.
	none := scorer.Score(makeSet(map[string]float64{
		signal.KeyKosdaqATR5Pct: 4.0,
		signal.KeyKosdaqRetD:    0.5,
	}))
	assert.Zero(t, none.Upside)
	assert.Zero(t, none.Downside)

	down := scorer.Score(makeSet(map[string]float64{
		signal.KeyKosdaqATR5Pct: 4.0,
		signal.KeyKosdaqRetD:    -1.5,
	}))
	assert.Equal(t, 12, down.Downside)

	up := scorer.Score(makeSet(map[string]float64{
		signal.KeyKosdaqATR5Pct: 4.0,
		signal.KeyKosdaqRetD:    1.5,
	}))
	assert.Equal(t, 10, up.Upside) // combo only, return is shy of the 2% rule
}

func TestSmallCapLongRedCandle(t *testing.T) {
	scorer := NewScorer(SmallCapRules())
	res := scorer.Score(makeSet(map[string]float64{signal.KeyKosdaqLongRed: 1}))
	assert.Equal(t, 12, res.Downside)
}

func TestDriverTextCoversEveryRule(t *testing.T) {
	for _, table := range [][]Rule{BroadMarketRules(), SmallCapRules()} {
		for _, r := range table {
			f := Firing{RuleID: r.ID, Direction: r.Direction, Points: r.Points, Observed: 1.23}
			assert.NotEmpty(t, DriverText(f), "rule %s has no driver text", r.ID)
		}
	}
}

func TestDriversPreserveOrder(t *testing.T) {
	scorer := NewScorer(BroadMarketRules())
	res := scorer.Score(makeSet(map[string]float64{
		signal.KeySPXRetD: -2,
		signal.KeyNDXRetD: -2,
	}))
	lines := Drivers(res.DownsideFirings)
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0], lines[1])
}

func TestScoreLevel(t *testing.T) {
	assert.Equal(t, LevelHigh, ScoreLevel(70))
	assert.Equal(t, LevelMedium, ScoreLevel(69))
	assert.Equal(t, LevelMedium, ScoreLevel(40))
	assert.Equal(t, LevelLow, ScoreLevel(39))
}

func TestDurationHint(t *testing.T) {
	label, _ := DurationHint(75)
	assert.Equal(t, "3-5 days", label)
	label, _ = DurationHint(50)
	assert.Equal(t, "1-3 days", label)
	label, _ = DurationHint(10)
	assert.Equal(t, "0-1 days", label)
}

package accumulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-market-reporter/internal/entity"
)

func TestSafeReturn(t *testing.T) {
	closes := []float64{100, 102, 104, 106, 108, 110}

	assert.InDelta(t, (110.0/104.0-1)*100, SafeReturn(closes, 3), 1e-9)
	assert.InDelta(t, (110.0/100.0-1)*100, SafeReturn(closes, 5), 1e-9)

	// shortfall, zero base, and NaN base all degrade to zero.
	assert.Zero(t, SafeReturn(closes, 6))
	assert.Zero(t, SafeReturn([]float64{0, 1, 2, 3}, 3))
	assert.Zero(t, SafeReturn([]float64{math.NaN(), 1, 2, 3}, 3))
}

func TestScore(t *testing.T) {
	// 1.2*40 + 0.5*30 + 0.8*20 + 10 = 89
	assert.InDelta(t, 89.0, Score(1.2, 0.5, 0.8, true), 1e-9)
	assert.InDelta(t, 79.0, Score(1.2, 0.5, 0.8, false), 1e-9)

	assert.Equal(t, 100.0, Score(10, 10, 10, true))
	assert.Equal(t, 0.0, Score(-5, -5, -5, false))
}

func TestInUniverse(t *testing.T) {
	q := entity.Quote{MarketCap: MinMarketCap, Turnover: MinTurnover, TurnoverRatio: MinTurnoverRatio}
	assert.True(t, InUniverse(q))

	q.Turnover = MinTurnover - 1
	assert.False(t, InUniverse(q))
}

func TestAnalyze(t *testing.T) {
	q := entity.Quote{
		Ticker:    "005930",
		Name:      "Samsung Electronics",
		Close:     70000,
		ChangePct: 2.1,
		MarketCap: 1_000_000_000_000,
		Turnover:  100_000_000_000,
	}
	closes := []float64{100, 101, 102, 103, 104, 105}
	flows := []float64{0, 0, 0, 2_000_000_000, 3_000_000_000, 5_000_000_000}

	c, ok := Analyze(q, closes, flows)
	require.True(t, ok)

	assert.True(t, c.Premium, "three straight positive flow days")
	assert.InDelta(t, 5.0, c.Flow1DPctTurnover, 1e-9) // 5B / 100B
	assert.InDelta(t, 1.0, c.Flow3DPctMarketCap, 1e-9)    // 10B / 1T
	assert.InDelta(t, 1.0, c.Flow5DPctMarketCap, 1e-9)
	assert.InDelta(t, SafeReturn(closes, 3), c.Return3D, 1e-9)

	// 1.0*40 + 0.5*30 + 1.0*20 + 10 = 85
	assert.InDelta(t, 85.0, c.Score, 1e-9)

	// same frozen inputs, same candidate.
	again, ok := Analyze(q, closes, flows)
	require.True(t, ok)
	assert.Equal(t, c, again)
}

func TestAnalyzeRejectsThinHistory(t *testing.T) {
	q := entity.Quote{Ticker: "000001"}
	_, ok := Analyze(q, []float64{100, 101, 102}, []float64{0, 0, 0})
	assert.False(t, ok)

	// six points but only five finite.
	closes := []float64{100, math.NaN(), 102, 103, 104, math.NaN()}
	_, ok = Analyze(q, closes, make([]float64, 6))
	assert.False(t, ok)
}

func TestAnalyzeForwardFillsGaps(t *testing.T) {
	q := entity.Quote{Ticker: "000002", MarketCap: 1e12, Turnover: 1e11}
	closes := []float64{100, math.NaN(), 102, 103, math.NaN(), 105, 106}
	c, ok := Analyze(q, closes, make([]float64, 7))
	require.True(t, ok)
	assert.False(t, c.Premium)
	assert.InDelta(t, (106.0/103.0-1)*100, c.Return3D, 1e-9)
}

func TestSplit(t *testing.T) {
	base := Candidate{MarketCap: ListMinMarketCap}

	premium := base
	premium.Ticker = "PRM"
	premium.Premium = true
	premium.Return3D = 5
	premium.Flow3DPctMarketCap = 1.0
	premium.Score = 90

	fast := base
	fast.Ticker = "FST"
	fast.ChangePct = 12
	fast.Flow1DPctTurnover = 4
	fast.Return3D = 15
	fast.Score = 60

	overheat := base
	overheat.Ticker = "OVH"
	overheat.Return5D = 35
	overheat.Score = 40

	interest := base
	interest.Ticker = "INT"
	interest.Flow3DPctMarketCap = 0.5
	interest.Return3D = 3
	interest.Score = 50

	small := premium
	small.Ticker = "SML"
	small.MarketCap = ListMinMarketCap - 1

	s := Split([]Candidate{fast, overheat, interest, premium, small})

	require.Len(t, s.Premium, 1)
	assert.Equal(t, "PRM", s.Premium[0].Ticker)
	require.Len(t, s.Fast, 1)
	assert.Equal(t, "FST", s.Fast[0].Ticker)
	require.Len(t, s.Overheat, 1)
	assert.Equal(t, "OVH", s.Overheat[0].Ticker)

	// premium names stay out of the interest bucket even when they
	// qualify on flow; the sub-cap name is dropped everywhere.
	require.Len(t, s.Interest, 1)
	assert.Equal(t, "INT", s.Interest[0].Ticker)
}

func TestSplitSortsByScore(t *testing.T) {
	a := Candidate{Ticker: "A", MarketCap: ListMinMarketCap, Premium: true, Return3D: 1, Score: 20}
	b := Candidate{Ticker: "B", MarketCap: ListMinMarketCap, Premium: true, Return3D: 1, Score: 80}

	s := Split([]Candidate{a, b})
	require.Len(t, s.Premium, 2)
	assert.Equal(t, "B", s.Premium[0].Ticker)
}

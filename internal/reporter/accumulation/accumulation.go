// Package accumulation scores how aggressively institutional and
// foreign money has been building a position in a stock before the
// price has fully moved.
package accumulation

import (
	"math"

	"go-market-reporter/internal/entity"
)

// Universe admission thresholds, in won.
const (
	MinMarketCap     = 100_000_000_000
	MinTurnover      = 50_000_000_000
	MinTurnoverRatio = 1.0
)

const minCloses = 6

// Candidate is one surviving ticker with its computed flow metrics and
// accumulation strength score.
type Candidate struct {
	Ticker    string
	Name      string
	Close     float64
	ChangePct float64
	MarketCap float64
	Turnover  float64

	TurnoverRatio float64
	Return3D      float64
	Return5D      float64

	NetValue1D float64
	NetValue3D float64
	NetValue5D float64

	Flow1DPctTurnover  float64
	Flow3DPctMarketCap float64
	Flow5DPctMarketCap float64

	Premium bool
	Score   float64
}

// InUniverse reports whether a snapshot row is liquid enough to be
// worth the per-ticker detail fetches.
func InUniverse(q entity.Quote) bool {
	return q.MarketCap >= MinMarketCap &&
		q.Turnover >= MinTurnover &&
		q.TurnoverRatio >= MinTurnoverRatio
}

// SafeReturn is the percentage return over the trailing days window.
// Any shortfall, a zero base, or a non-finite input reads as 0.0 so
// one sparse series never drops a candidate.
func SafeReturn(closes []float64, days int) float64 {
	if len(closes) <= days {
		return 0.0
	}
	base := closes[len(closes)-(days+1)]
	last := closes[len(closes)-1]
	if base == 0 || math.IsNaN(base) || math.IsNaN(last) {
		return 0.0
	}
	return (last/base - 1.0) * 100.0
}

// Score combines the flow ratios into a 0-100 accumulation strength.
// The three-day flow dominates; a premium flag adds a flat bonus.
func Score(flow3PctMcap, flow1PctMcap, flow5PctMcap float64, premium bool) float64 {
	raw := flow3PctMcap*40.0 + flow1PctMcap*30.0 + flow5PctMcap*20.0
	if premium {
		raw += 10.0
	}
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return math.Round(raw*100) / 100
}

// Analyze computes the per-ticker metrics from the calendar-aligned
// close and combined net-flow value series. It returns false when the
// price history is too thin to score.
func Analyze(q entity.Quote, closes []float64, netFlows []float64) (Candidate, bool) {
	if countFinite(closes) < minCloses {
		return Candidate{}, false
	}
	closes = forwardFill(closes)
	for _, c := range closes {
		if math.IsNaN(c) {
			return Candidate{}, false
		}
	}
	if len(netFlows) != len(closes) {
		padded := make([]float64, len(closes))
		copy(padded[len(closes)-min(len(netFlows), len(closes)):], netFlows)
		netFlows = padded
	}

	tot1 := tailSum(netFlows, 1)
	tot3 := tailSum(netFlows, 3)
	tot5 := tailSum(netFlows, 5)

	c := Candidate{
		Ticker:        q.Ticker,
		Name:          q.Name,
		Close:         q.Close,
		ChangePct:     q.ChangePct,
		MarketCap:     q.MarketCap,
		Turnover:      q.Turnover,
		TurnoverRatio: q.TurnoverRatio,
		Return3D:      SafeReturn(closes, 3),
		Return5D:      SafeReturn(closes, 5),
		NetValue1D:    tot1,
		NetValue3D:    tot3,
		NetValue5D:    tot5,
	}
	if q.MarketCap != 0 {
		c.Flow3DPctMarketCap = tot3 / q.MarketCap * 100.0
		c.Flow5DPctMarketCap = tot5 / q.MarketCap * 100.0
	}
	if q.Turnover != 0 {
		c.Flow1DPctTurnover = tot1 / q.Turnover * 100.0
	}

	c.Premium = allPositive(netFlows[max(0, len(netFlows)-3):])
	flow1PctMcap := 0.0
	if q.MarketCap != 0 {
		flow1PctMcap = tot1 / q.MarketCap * 100.0
	}
	c.Score = Score(c.Flow3DPctMarketCap, flow1PctMcap, c.Flow5DPctMarketCap, c.Premium)
	return c, true
}

func countFinite(vals []float64) int {
	n := 0
	for _, v := range vals {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

func forwardFill(vals []float64) []float64 {
	out := make([]float64, len(vals))
	last := math.NaN()
	for i, v := range vals {
		if !math.IsNaN(v) {
			last = v
		}
		out[i] = last
	}
	return out
}

func tailSum(vals []float64, n int) float64 {
	sum := 0.0
	for i := max(0, len(vals)-n); i < len(vals); i++ {
		sum += vals[i]
	}
	return sum
}

func allPositive(vals []float64) bool {
	if len(vals) == 0 {
		return false
	}
	for _, v := range vals {
		if v <= 0 {
			return false
		}
	}
	return true
}

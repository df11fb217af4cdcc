package scoring

import (
	"go-market-reporter/internal/reporter/signal"
)

// Direction says which accumulator a rule feeds.
type Direction int

const (
	Upside Direction = iota
	Downside
)

// Comparison is the threshold test a rule applies to its signal.
type Comparison int

const (
	GTE Comparison = iota
	LTE
)

// Rule is one independent threshold rule. Rules only ever add points to a
// single accumulator; they never subtract from the other one. A rule may
// carry a gate condition on a second signal; the rule is skipped unless
// both conditions hold. A rule referencing an unavailable signal is
// skipped entirely.
type Rule struct {
	ID        string
	Key       string
	Cmp       Comparison
	Threshold float64
	Direction Direction
	Points    int

	GateKey       string
	GateCmp       Comparison
	GateThreshold float64
}

// Firing records one rule that contributed points. The observed value is
// the primary signal's value at evaluation time, kept so that driver text
// can be produced later without re-reading the signal set.
type Firing struct {
	RuleID    string
	Direction Direction
	Points    int
	Observed  float64
}

// Result is the scorer output. Both scores are clamped to [0,100] as the
// final step; intermediate sums are never clamped. A score of zero always
// comes with an empty firing list.
type Result struct {
	Upside          int
	Downside        int
	UpsideFirings   []Firing
	DownsideFirings []Firing
}

// Scorer evaluates an ordered rule table against a signal set. One scorer
// instance per market segment; the tables differ, the machinery does not.
type Scorer struct {
	rules []Rule
}

// NewScorer creates a scorer over the given rule table. The table is
// evaluated in order; firing order equals table order.
func NewScorer(rules []Rule) *Scorer {
	return &Scorer{rules: rules}
}

// Score runs every rule and returns the clamped accumulator totals with
// their firings. Pure: identical inputs produce identical output.
func (s *Scorer) Score(signals signal.Set) Result {
	var res Result
	up, down := 0, 0

	for _, r := range s.rules {
		obs, ok := signals.Get(r.Key).Float()
		if !ok {
			continue
		}
		if !compare(r.Cmp, obs, r.Threshold) {
			continue
		}
		if r.GateKey != "" {
			gate, gok := signals.Get(r.GateKey).Float()
			if !gok || !compare(r.GateCmp, gate, r.GateThreshold) {
				continue
			}
		}

		f := Firing{RuleID: r.ID, Direction: r.Direction, Points: r.Points, Observed: obs}
		if r.Direction == Upside {
			up += r.Points
			res.UpsideFirings = append(res.UpsideFirings, f)
		} else {
			down += r.Points
			res.DownsideFirings = append(res.DownsideFirings, f)
		}
	}

	res.Upside = clampScore(up)
	res.Downside = clampScore(down)
	return res
}

func compare(cmp Comparison, v, threshold float64) bool {
	if cmp == GTE {
		return v >= threshold
	}
	return v <= threshold
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Level buckets a score for report badges.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// ScoreLevel maps a 0-100 score to its badge level.
func ScoreLevel(score int) Level {
	switch {
	case score >= 70:
		return LevelHigh
	case score >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// DurationHint gives the beginner-facing "how long could this matter"
// guidance per level.
func DurationHint(score int) (label, text string) {
	switch {
	case score >= 70:
		return "3-5 days", "When several indicators deteriorate or overheat at once, elevated volatility usually persists for three to five sessions."
	case score >= 40:
		return "1-3 days", "A short-lived shock or volatility expansion may carry over for one to three sessions."
	default:
		return "0-1 days", "Absent fresh catalysts, moves of this size are usually absorbed within a session."
	}
}

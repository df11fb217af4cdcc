package composite

import (
	"fmt"
	"math"

	"go-market-reporter/internal/reporter/signal"
)

const trendTail = 15

// TrendComment reads the tail of the composite series and describes its
// direction in plain language. At least five available points are
// needed before a call is made.
func TrendComment(snaps []Snapshot) string {
	vals := availableTail(snaps, trendTail)
	if len(vals) < 5 {
		return "Not enough recent data to judge the trend."
	}

	first, last := vals[0], vals[len(vals)-1]
	delta := last - first
	slope := delta / float64(len(vals)-1)

	vol := 0.0
	for i := 1; i < len(vals); i++ {
		vol += math.Abs(vals[i] - vals[i-1])
	}
	vol /= float64(len(vals) - 1)

	switch {
	case delta >= 20 && slope > 0:
		return "The composite has turned into a clear uptrend."
	case delta >= 5 && slope > 0:
		return "The composite is holding a mild upward slope."
	case delta > -5 && delta < 5 && vol < 10:
		return "The composite is drifting sideways in a narrow range."
	case delta <= -20 && slope < 0:
		return "The composite has rolled over into a clear downtrend and market strength is fading."
	case delta <= -5 && slope < 0:
		return "The composite has entered a corrective stretch."
	default:
		return "Short-term signals are mixed with no dominant direction."
	}
}

func availableTail(snaps []Snapshot, n int) []float64 {
	vals := make([]float64, 0, len(snaps))
	for _, s := range snaps {
		if v, ok := s.Composite.Float(); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) > n {
		vals = vals[len(vals)-n:]
	}
	return vals
}

// StrategyGuide renders a position-sizing guide for one market. The
// tone stays prescriptive about risk, never about certainty.
func StrategyGuide(c signal.Value, marketName string) string {
	v, ok := c.Float()
	if !ok {
		return fmt.Sprintf("%s: data gap in the current window. Hold off on decisions until the next session's data lands.", marketName)
	}
	switch {
	case v >= 40:
		return fmt.Sprintf("%s: strong upside regime. Prefer staged buys on pullbacks and staged profit-taking over chasing; fix stop levels in advance and cap exposure to overheated names.", marketName)
	case v >= 20:
		return fmt.Sprintf("%s: upside regime. Staged entries in quality leaders are reasonable; if volatility expands, manage position size instead of adding. Confirm the uptrend holds its moving averages first.", marketName)
	case v >= 5:
		return fmt.Sprintf("%s: mild upside. Dispersion between names can widen even as the index climbs, so be selective. Keep new entries small and staged, and take partial profits early.", marketName)
	case v > -5:
		return fmt.Sprintf("%s: neutral regime. Direction is weak, so cash and patience are rational. If trading, work with tight stops and nearby targets.", marketName)
	case v > -20:
		return fmt.Sprintf("%s: mild downside. Be conservative with new buys and tighten defensive stops on holdings. Limit rebound trades to small size and only after volume-backed confirmation.", marketName)
	case v > -40:
		return fmt.Sprintf("%s: downside regime. Reducing exposure and raising cash comes first; favor watching over aggressive buying, and treat any bounce as short-term until the trend confirms a turn.", marketName)
	default:
		return fmt.Sprintf("%s: strong downside regime. Treat this as risk-off, raise cash, and apply rule-based stops first. Avoid aggressive buying until stabilization signals appear.", marketName)
	}
}

// OverallComment compares the two segments' latest composites and
// describes the relative-strength picture.
func OverallComment(broad, smallCap signal.Value) string {
	k, okK := broad.Float()
	q, okQ := smallCap.Float()
	if !okK || !okQ {
		return "Some inputs are missing, so confidence in this read is low. Re-check after the next session's data is reflected."
	}
	switch {
	case k >= 20 && q >= 20:
		return "Both markets lean bullish. Conditions favor buying overall, but in overheated stretches staged entries and profit-taking rules matter more than chasing."
	case k >= 20 && q < 20:
		return "The broad market is relatively strong while small caps have cooled. A defensive upside stance built on large quality names works best; themes and small caps need selectivity."
	case q >= 20 && k < 20:
		return "Small caps are the relatively strong segment. Growth and theme names may lead, but volatility can expand with them, so apply staged buys and stop rules more strictly."
	case k <= -20 && q <= -20:
		return "Both markets lean bearish. Cutting exposure and managing risk comes first; treat rebounds as checkpoints rather than opportunities."
	default:
		return "The two markets are pointing in different directions. Individual trend and flow checks beat index bets here; keep cash on hand and act selectively."
	}
}

package pattern

// DisplayName maps a label to the name shown in report tables.
func DisplayName(l Label) string {
	switch l {
	case StrongBreakout:
		return "Strong breakout"
	case MildBreakout:
		return "Mild breakout"
	case FalseBreakoutUpperShadow:
		return "False breakout (upper shadow)"
	case BreakoutFailureCrash:
		return "Crash after breakout"
	case Neutral:
		return "Neutral"
	default:
		return ""
	}
}

// StrategyText is the canned per-pattern guidance shown alongside a
// classified new-high day.
func StrategyText(l Label) string {
	switch l {
	case StrongBreakout:
		return "Strong trend in force. Entries at the open or on pullbacks are workable; cut if the prior day's low gives way."
	case MildBreakout:
		return "Orderly breakout. Rather than chasing, consider scaling in on a re-break after a one-to-two-day pause."
	case FalseBreakoutUpperShadow:
		return "Warning sign. Avoid new entries; if holding, favor trimming into any bounce."
	case BreakoutFailureCrash:
		return "Failed breakout. Further downside risk is high — no new buying; holders should consider stopping out quickly."
	case Neutral:
		return "Direction not yet established. Scale in only on a break of today's high; stand aside if the prior high is lost."
	default:
		return ""
	}
}

// ProbabilityInputs carries the per-security context used to adjust the
// base probability of a classified pattern.
type ProbabilityInputs struct {
	Premium          bool
	ChangePct        float64
	FromLowPct       float64
	NetForeign       float64
	NetInstitutional float64
}

// UpsideProbability turns a pattern plus supply/demand context into the
// statistical follow-through percentage shown in reports. Base rates are
// per pattern with small additive adjustments, clamped to [10, 95].
func UpsideProbability(l Label, in ProbabilityInputs) float64 {
	base := 50.0
	switch l {
	case StrongBreakout:
		base = 78
	case MildBreakout:
		base = 68
	case FalseBreakoutUpperShadow:
		base = 42
	case BreakoutFailureCrash:
		base = 30
	case Neutral:
		base = 55
	}

	if in.Premium {
		base += 5
	}
	if in.NetForeign > 0 && in.NetInstitutional > 0 {
		base += 3
	}
	if in.FromLowPct < 150 {
		base += 2
	}
	if in.ChangePct >= 10 {
		base -= 3
	}

	if base < 10 {
		base = 10
	}
	if base > 95 {
		base = 95
	}
	return base
}

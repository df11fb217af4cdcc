package composite

import "go-market-reporter/internal/reporter/signal"

// Band is the seven-way verdict mapped from the composite score.
type Band string

const (
	BandStrongBullish    Band = "strong_bullish"
	BandBullish          Band = "bullish"
	BandWeaklyBullish    Band = "weakly_bullish"
	BandNeutral          Band = "neutral"
	BandWeaklyBearish    Band = "weakly_bearish"
	BandBearish          Band = "bearish"
	BandStrongBearish    Band = "strong_bearish"
	BandInsufficientData Band = "insufficient_data"
)

// BandFor maps a composite score onto its band. An unavailable score,
// which happens while the rolling windows are still filling, maps to
// the insufficient-data band rather than neutral.
func BandFor(c signal.Value) Band {
	v, ok := c.Float()
	if !ok {
		return BandInsufficientData
	}
	switch {
	case v >= 40:
		return BandStrongBullish
	case v >= 20:
		return BandBullish
	case v >= 5:
		return BandWeaklyBullish
	case v <= -40:
		return BandStrongBearish
	case v <= -20:
		return BandBearish
	case v <= -5:
		return BandWeaklyBearish
	default:
		return BandNeutral
	}
}

// DisplayName is the report-facing label for a band.
func (b Band) DisplayName() string {
	switch b {
	case BandStrongBullish:
		return "Strong Bullish"
	case BandBullish:
		return "Bullish"
	case BandWeaklyBullish:
		return "Weakly Bullish"
	case BandWeaklyBearish:
		return "Weakly Bearish"
	case BandBearish:
		return "Bearish"
	case BandStrongBearish:
		return "Strong Bearish"
	case BandInsufficientData:
		return "Insufficient Data"
	default:
		return "Neutral"
	}
}

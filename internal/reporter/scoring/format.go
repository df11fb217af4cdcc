package scoring

import (
	"fmt"

	"go-market-reporter/pkg/utils"
)

// Driver text is a presentation concern layered on top of the numeric
// result: the scorer emits firings, this file turns them into sentences.
// Texts are keyed by rule ID and interpolate the observed value.

var driverTexts = map[string]string{
	"spx_daily_up":       "S&P 500 futures strong on the day (%s%%)",
	"spx_daily_down":     "S&P 500 futures weak on the day (%s%%)",
	"ndx_daily_up":       "Nasdaq futures strong on the day (%s%%)",
	"ndx_daily_down":     "Nasdaq futures sharp daily drop (%s%%)",
	"spx_overnight_up":   "S&P 500 futures firm overnight (4h, %s%%)",
	"spx_overnight_down": "S&P 500 futures sliding overnight (4h, %s%%)",
	"ndx_overnight_up":   "Nasdaq futures firm overnight (4h, %s%%)",
	"ndx_overnight_down": "Nasdaq futures sliding overnight (4h, %s%%)",
	"btc_daily_up":       "Bitcoin surging on the day, risk appetite on (%s%%)",
	"btc_daily_down":     "Bitcoin dropping on the day, risk appetite off (%s%%)",
	"btc_short_up":       "Bitcoin spiking short term (3h, %s%%)",
	"btc_short_down":     "Bitcoin falling short term (3h, %s%%)",
	"tnx_spike":          "US 10Y yield spiking (Δ %sbp)",
	"tnx_relief":         "US 10Y yield easing (Δ %sbp)",
	"vix_elevated":       "VIX at an elevated level (VIX=%s)",
	"vix_calm":           "VIX at a calm level (VIX=%s)",
	"vix9d_elevated":     "VIX9D rising, short-term event risk (VIX9D=%s)",
	"vix9d_calm":         "VIX9D settled (VIX9D=%s)",
	"vix_spread_wide":    "Short-term volatility spread widening (VIX9D-VIX=%spt)",
	"move_elevated":      "MOVE very high, bond/rate stress (MOVE=%s)",
	"move_calm":          "MOVE low, bond volatility settled (MOVE=%s)",
	"won_weak":           "Won weakening sharply, foreign selling pressure (Δ %s KRW)",
	"won_strong":         "Won firming, room for risk appetite (Δ %s KRW)",
	"dxy_spike":          "DXY jumping, global risk-off (DXY %s%%)",
	"dxy_drop":           "DXY falling, risk assets favored (DXY %s%%)",
	"kospi_strong":       "KOSPI 200 short-term strength (%s%%)",
	"kospi_weak":         "KOSPI 200 short-term weakness (%s%%)",
	"kosdaq_strong":      "KOSDAQ 150 strength, small-cap momentum (%s%%)",
	"kosdaq_weak":        "KOSDAQ 150 dropping, small-cap momentum fading (%s%%)",
	"atr_down_combo":     "High volatility with a down day, drawdown risk (ATR=%s%%)",
	"atr_up_combo":       "High volatility with an up day, breakout-style strength possible (ATR=%s%%)",
	"long_red_candle":    "Long red candle, short-term fear may spread",
}

// DriverText renders one firing as a human-readable driver string.
func DriverText(f Firing) string {
	tmpl, ok := driverTexts[f.RuleID]
	if !ok {
		return f.RuleID
	}
	if f.RuleID == "long_red_candle" {
		return tmpl
	}
	return fmt.Sprintf(tmpl, utils.FormatValue(f.Observed, 2))
}

// Drivers renders every firing in evaluation order.
func Drivers(firings []Firing) []string {
	out := make([]string, 0, len(firings))
	for _, f := range firings {
		out = append(out, DriverText(f))
	}
	return out
}

package scoring

import (
	"go-market-reporter/internal/reporter/signal"
)

// The point weights and thresholds below are hand-tuned report
// calibration carried over as-is; they are configuration, not derived
// quantities. Keep the two segment tables as data; the scorer itself is
// segment-agnostic.

// BroadMarketRules is the rule table for the broad (KOSPI) segment.
func BroadMarketRules() []Rule {
	return []Rule{
		{ID: "spx_daily_up", Key: signal.KeySPXRetD, Cmp: GTE, Threshold: 1.0, Direction: Upside, Points: 12},
		{ID: "spx_daily_down", Key: signal.KeySPXRetD, Cmp: LTE, Threshold: -1.0, Direction: Downside, Points: 12},
		{ID: "ndx_daily_up", Key: signal.KeyNDXRetD, Cmp: GTE, Threshold: 1.5, Direction: Upside, Points: 15},
		{ID: "ndx_daily_down", Key: signal.KeyNDXRetD, Cmp: LTE, Threshold: -1.5, Direction: Downside, Points: 15},

		{ID: "spx_overnight_up", Key: signal.KeySPXRet4H, Cmp: GTE, Threshold: 0.8, Direction: Upside, Points: 8},
		{ID: "spx_overnight_down", Key: signal.KeySPXRet4H, Cmp: LTE, Threshold: -0.8, Direction: Downside, Points: 8},
		{ID: "ndx_overnight_up", Key: signal.KeyNDXRet4H, Cmp: GTE, Threshold: 1.2, Direction: Upside, Points: 10},
		{ID: "ndx_overnight_down", Key: signal.KeyNDXRet4H, Cmp: LTE, Threshold: -1.2, Direction: Downside, Points: 10},

		{ID: "btc_daily_up", Key: signal.KeyBTCRetD, Cmp: GTE, Threshold: 7, Direction: Upside, Points: 6},
		{ID: "btc_daily_down", Key: signal.KeyBTCRetD, Cmp: LTE, Threshold: -7, Direction: Downside, Points: 6},
		{ID: "btc_short_up", Key: signal.KeyBTCRet3H, Cmp: GTE, Threshold: 4, Direction: Upside, Points: 3},
		{ID: "btc_short_down", Key: signal.KeyBTCRet3H, Cmp: LTE, Threshold: -4, Direction: Downside, Points: 3},

		{ID: "tnx_spike", Key: signal.KeyTNXChgBps, Cmp: GTE, Threshold: 10, Direction: Downside, Points: 10},
		{ID: "tnx_relief", Key: signal.KeyTNXChgBps, Cmp: LTE, Threshold: -8, Direction: Upside, Points: 6},

		{ID: "vix_elevated", Key: signal.KeyVIXLevel, Cmp: GTE, Threshold: 22, Direction: Downside, Points: 8},
		{ID: "vix_calm", Key: signal.KeyVIXLevel, Cmp: LTE, Threshold: 14, Direction: Upside, Points: 3},
		{ID: "vix9d_elevated", Key: signal.KeyVIX9DLevel, Cmp: GTE, Threshold: 25, Direction: Downside, Points: 10},
		{ID: "vix9d_calm", Key: signal.KeyVIX9DLevel, Cmp: LTE, Threshold: 15, Direction: Upside, Points: 3},
		{ID: "vix_spread_wide", Key: signal.KeyVIXSpread, Cmp: GTE, Threshold: 3, Direction: Downside, Points: 5},
		{ID: "move_elevated", Key: signal.KeyMOVELevel, Cmp: GTE, Threshold: 130, Direction: Downside, Points: 10},
		{ID: "move_calm", Key: signal.KeyMOVELevel, Cmp: LTE, Threshold: 90, Direction: Upside, Points: 3},

		{ID: "won_weak", Key: signal.KeyUSDKRWDiff, Cmp: GTE, Threshold: 8, Direction: Downside, Points: 8},
		{ID: "won_strong", Key: signal.KeyUSDKRWDiff, Cmp: LTE, Threshold: -8, Direction: Upside, Points: 5},
		{ID: "dxy_spike", Key: signal.KeyDXYChg, Cmp: GTE, Threshold: 0.7, Direction: Downside, Points: 6},
		{ID: "dxy_drop", Key: signal.KeyDXYChg, Cmp: LTE, Threshold: -0.7, Direction: Upside, Points: 6},

		{ID: "kospi_strong", Key: signal.KeyKOSPIRetD, Cmp: GTE, Threshold: 1.5, Direction: Upside, Points: 6},
		{ID: "kospi_weak", Key: signal.KeyKOSPIRetD, Cmp: LTE, Threshold: -1.5, Direction: Downside, Points: 6},
	}
}

// SmallCapRules is the rule table for the small-cap (KOSDAQ) segment. It
// leans harder on growth-sensitive inputs and adds the segment-local
// volatility rules.
func SmallCapRules() []Rule {
	return []Rule{
		{ID: "ndx_daily_up", Key: signal.KeyNDXRetD, Cmp: GTE, Threshold: 1.5, Direction: Upside, Points: 14},
		{ID: "ndx_daily_down", Key: signal.KeyNDXRetD, Cmp: LTE, Threshold: -1.5, Direction: Downside, Points: 14},
		{ID: "ndx_overnight_up", Key: signal.KeyNDXRet4H, Cmp: GTE, Threshold: 1.2, Direction: Upside, Points: 8},
		{ID: "ndx_overnight_down", Key: signal.KeyNDXRet4H, Cmp: LTE, Threshold: -1.2, Direction: Downside, Points: 8},

		{ID: "vix9d_elevated", Key: signal.KeyVIX9DLevel, Cmp: GTE, Threshold: 25, Direction: Downside, Points: 10},
		{ID: "move_elevated", Key: signal.KeyMOVELevel, Cmp: GTE, Threshold: 130, Direction: Downside, Points: 8},

		{ID: "won_weak", Key: signal.KeyUSDKRWDiff, Cmp: GTE, Threshold: 8, Direction: Downside, Points: 6},

		{ID: "kosdaq_strong", Key: signal.KeyKosdaqRetD, Cmp: GTE, Threshold: 2.0, Direction: Upside, Points: 14},
		{ID: "kosdaq_weak", Key: signal.KeyKosdaqRetD, Cmp: LTE, Threshold: -2.0, Direction: Downside, Points: 14},

		{ID: "atr_down_combo", Key: signal.KeyKosdaqATR5Pct, Cmp: GTE, Threshold: 3.5, Direction: Downside, Points: 12,
			GateKey: signal.KeyKosdaqRetD, GateCmp: LTE, GateThreshold: -1.0},
		{ID: "atr_up_combo", Key: signal.KeyKosdaqATR5Pct, Cmp: GTE, Threshold: 3.5, Direction: Upside, Points: 10,
			GateKey: signal.KeyKosdaqRetD, GateCmp: GTE, GateThreshold: 1.0},

		{ID: "long_red_candle", Key: signal.KeyKosdaqLongRed, Cmp: GTE, Threshold: 1, Direction: Downside, Points: 12},
	}
}

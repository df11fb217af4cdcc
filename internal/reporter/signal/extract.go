package signal

import (
	"math"

	"go-market-reporter/internal/entity"
)

// CloseBack returns the close nBack bars from the end (1 = latest).
// Unavailable when the series is too short.
func CloseBack(candles []entity.Candle, nBack int) Value {
	if nBack < 1 || len(candles) < nBack {
		return Unavailable()
	}
	return Available(candles[len(candles)-nBack].Close)
}

// SpanReturn is the percentage return between the latest close and the
// close span bars earlier. A span of 1 is the day-over-day return.
func SpanReturn(candles []entity.Candle, span int) Value {
	return Pct(CloseBack(candles, 1), CloseBack(candles, span+1))
}

// ATRPct computes the Average True Range over the given period as a
// percentage of the latest close. Requires period+1 bars so that every
// true range has a previous close.
func ATRPct(candles []entity.Candle, period int) Value {
	if period < 1 || len(candles) < period+1 {
		return Unavailable()
	}
	atr := atrAbs(candles, period)
	last := candles[len(candles)-1].Close
	if last <= 0 {
		return Unavailable()
	}
	return Available(atr / last * 100.0)
}

func atrAbs(candles []entity.Candle, period int) float64 {
	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		c := candles[i]
		prevClose := candles[i-1].Close
		tr := math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
		sum += tr
	}
	return sum / float64(period)
}

// LongRedCandle reports whether the latest bar closed below its open with
// a day range of at least 1.5 times the ATR over period. Encoded as
// 1.0/0.0 so it travels as a Signal like everything else.
func LongRedCandle(candles []entity.Candle, period int) Value {
	if len(candles) < period+1 {
		return Unavailable()
	}
	atr := atrAbs(candles, period)
	if atr <= 0 {
		return Available(0)
	}
	today := candles[len(candles)-1]
	if today.Close < today.Open && (today.High-today.Low) >= 1.5*atr {
		return Available(1)
	}
	return Available(0)
}

// GlobalInputs carries the already-fetched series the global signal set is
// derived from. Any slice may be nil or short; the derived signal is then
// marked unavailable rather than failing the set.
type GlobalInputs struct {
	SPXDaily   []entity.Candle
	SPXHourly  []entity.Candle
	NDXDaily   []entity.Candle
	NDXHourly  []entity.Candle
	BTCDaily   []entity.Candle
	BTCHourly  []entity.Candle
	TNXDaily   []entity.Candle
	VIXDaily   []entity.Candle
	VIX9DDaily []entity.Candle
	MOVEDaily  []entity.Candle
	USDKRW     []entity.Candle
	DXYDaily   []entity.Candle
	KOSPIDaily []entity.Candle
}

// BuildGlobalSignals derives the cross-market signal set used by both
// segment scorers.
func BuildGlobalSignals(in GlobalInputs) Set {
	s := make(Set)

	s.put(KeySPXRetD, SpanReturn(in.SPXDaily, 1), "%", "S&P 500 futures daily change")
	s.put(KeySPXRet4H, SpanReturn(in.SPXHourly, 3), "%", "S&P 500 futures last 4h change (overnight proxy)")
	s.put(KeyNDXRetD, SpanReturn(in.NDXDaily, 1), "%", "Nasdaq futures daily change")
	s.put(KeyNDXRet4H, SpanReturn(in.NDXHourly, 3), "%", "Nasdaq futures last 4h change (overnight proxy)")

	s.put(KeyBTCRetD, SpanReturn(in.BTCDaily, 1), "%", "Bitcoin daily change")
	s.put(KeyBTCRet3H, SpanReturn(in.BTCHourly, 2), "%", "Bitcoin last 3h change")

	s.put(KeyTNXChgBps, Diff(CloseBack(in.TNXDaily, 1), CloseBack(in.TNXDaily, 2)), "bp", "US 10Y yield change (bp)")

	vixLvl := CloseBack(in.VIXDaily, 1)
	v9Lvl := CloseBack(in.VIX9DDaily, 1)
	s.put(KeyVIXLevel, vixLvl, "", "VIX (30-day implied volatility)")
	s.put(KeyVIXChg, SpanReturn(in.VIXDaily, 1), "%", "VIX daily change")
	s.put(KeyVIX9DLevel, v9Lvl, "", "VIX9D (9-day short-term volatility)")
	s.put(KeyVIX9DChg, SpanReturn(in.VIX9DDaily, 1), "%", "VIX9D daily change")
	s.put(KeyVIXSpread, Diff(v9Lvl, vixLvl), "pt", "VIX9D - VIX (short-term event risk proxy)")
	s.put(KeyMOVELevel, CloseBack(in.MOVEDaily, 1), "", "MOVE (US bond volatility)")

	s.put(KeyUSDKRWDiff, Diff(CloseBack(in.USDKRW, 1), CloseBack(in.USDKRW, 2)), "KRW", "USD/KRW change vs previous day (+ = weaker won)")
	s.put(KeyDXYChg, SpanReturn(in.DXYDaily, 1), "%", "Dollar index (DXY) daily change")

	s.put(KeyKOSPIRetD, SpanReturn(in.KOSPIDaily, 1), "%", "KOSPI 200 daily return")

	return s
}

// BuildSmallCapSignals derives the small-cap-only signal set from the
// KOSDAQ 150 daily series. A series shorter than six bars yields an
// all-unavailable set (except the long-red flag, which defaults to 0).
func BuildSmallCapSignals(index []entity.Candle) Set {
	s := make(Set)

	if len(index) < 6 {
		s.put(KeyKosdaqRetD, Unavailable(), "%", "KOSDAQ 150 daily return")
		s.put(KeyKosdaqATR5Pct, Unavailable(), "%", "KOSDAQ 150 5-day ATR% (volatility)")
		s.put(KeyKosdaqLongRed, Available(0), "bool", "KOSDAQ 150 long red candle (1=yes)")
		return s
	}

	s.put(KeyKosdaqRetD, SpanReturn(index, 1), "%", "KOSDAQ 150 daily return")
	s.put(KeyKosdaqATR5Pct, ATRPct(index, 5), "%", "KOSDAQ 150 5-day ATR% (volatility)")
	s.put(KeyKosdaqLongRed, LongRedCandle(index, 5), "bool", "KOSDAQ 150 long red candle (1=yes)")
	return s
}

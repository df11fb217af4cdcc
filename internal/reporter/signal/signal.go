package signal

// Signal is a named scalar observation with display metadata. Signals are
// produced once per report run and read-only afterwards.
type Signal struct {
	Key         string
	Value       Value
	Unit        string
	Description string
}

// Set is the keyed collection handed to the scorer and the renderer.
type Set map[string]Signal

// Get returns the value for key; a missing key reads as unavailable.
func (s Set) Get(key string) Value {
	sig, ok := s[key]
	if !ok {
		return Unavailable()
	}
	return sig.Value
}

func (s Set) put(key string, v Value, unit, desc string) {
	s[key] = Signal{Key: key, Value: v, Unit: unit, Description: desc}
}

// Global signal keys.
const (
	KeySPXRetD    = "ES_ret_d"
	KeySPXRet4H   = "ES_ret_4h"
	KeyNDXRetD    = "NQ_ret_d"
	KeyNDXRet4H   = "NQ_ret_4h"
	KeyBTCRetD    = "BTC_ret_d"
	KeyBTCRet3H   = "BTC_ret_3h"
	KeyTNXChgBps  = "TNX_chg_bps"
	KeyVIXLevel   = "VIX_lvl"
	KeyVIXChg     = "VIX_dd"
	KeyVIX9DLevel = "VIX9D_lvl"
	KeyVIX9DChg   = "VIX9D_dd"
	KeyVIXSpread  = "VIX_spread"
	KeyMOVELevel  = "MOVE_lvl"
	KeyUSDKRWDiff = "USDKRW_diff"
	KeyDXYChg     = "DXY_dd"
	KeyKOSPIRetD  = "KOSPI200_ret_d"
)

// Small-cap segment signal keys.
const (
	KeyKosdaqRetD    = "KOSDAQ150_ret_d"
	KeyKosdaqATR5Pct = "KOSDAQ150_ATR5_pct"
	KeyKosdaqLongRed = "KOSDAQ150_long_red"
)

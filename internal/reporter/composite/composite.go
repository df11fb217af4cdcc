package composite

import (
	"math"
	"time"

	"go-market-reporter/internal/reporter/signal"
)

// Weights are the segment-specific mix of the four sub-scores. They must
// sum to 1.0.
type Weights struct {
	Flow    float64
	Trend   float64
	Macro   float64
	Breadth float64
}

// Config parameterizes the index for one market segment.
type Config struct {
	TrendShort  int
	TrendLong   int
	TrendShortW float64
	TrendLongW  float64
	Weights     Weights
}

// BroadConfig is the calibration for the broad (KOSPI) segment.
func BroadConfig() Config {
	return Config{
		TrendShort:  20,
		TrendLong:   60,
		TrendShortW: 0.5,
		TrendLongW:  0.5,
		Weights:     Weights{Flow: 0.35, Trend: 0.25, Macro: 0.25, Breadth: 0.15},
	}
}

// SmallCapConfig is the calibration for the small-cap (KOSDAQ) segment:
// flow-heavier, shorter trend windows.
func SmallCapConfig() Config {
	return Config{
		TrendShort:  10,
		TrendLong:   30,
		TrendShortW: 0.6,
		TrendLongW:  0.4,
		Weights:     Weights{Flow: 0.40, Trend: 0.20, Macro: 0.15, Breadth: 0.25},
	}
}

// Row is one joined trading day of inputs. Macro values carry their own
// availability; index close and flow proxy are required for the day to
// exist at all.
type Row struct {
	Date      time.Time
	Index     float64
	FlowProxy float64
	FX20dPct  signal.Value
	Rate20d   signal.Value
}

// Snapshot is the per-day output: four sub-scores and the weighted
// composite. Sub-scores are unavailable until their rolling windows fill;
// the macro score always exists (missing macro inputs contribute zero).
type Snapshot struct {
	Date      time.Time
	IndexRet  signal.Value
	Flow      signal.Value
	Trend     signal.Value
	Macro     signal.Value
	Breadth   signal.Value
	Composite signal.Value
}

const (
	flowWindow    = 20
	flowBaseFloor = 10.0
	breadthRange  = 60
	breadthMA     = 20
)

// Compute runs the index over the whole joined series using trailing
// windows only. Macro inputs are forward-filled first; remaining gaps
// read as zero so one missing sub-source cannot poison the composite.
func Compute(rows []Row, cfg Config) []Snapshot {
	rows = forwardFillMacro(rows)

	out := make([]Snapshot, len(rows))
	for i, r := range rows {
		snap := Snapshot{Date: r.Date}

		if i > 0 && rows[i-1].Index != 0 {
			snap.IndexRet = signal.Available((r.Index/rows[i-1].Index - 1.0) * 100.0)
		} else {
			snap.IndexRet = signal.Unavailable()
		}

		snap.Flow = flowScore(rows, i)
		snap.Trend = trendScore(rows, i, cfg)
		snap.Macro = macroScore(r)
		snap.Breadth = breadthScore(rows, i)
		snap.Composite = combine(snap, cfg.Weights)

		out[i] = snap
	}
	return out
}

// rescale clips v into [-limit, limit] and maps the result onto the
// [-100, 100] presentation range.
func rescale(v, limit float64) float64 {
	if v > limit {
		v = limit
	}
	if v < -limit {
		v = -limit
	}
	return v / limit * 100.0
}

func flowScore(rows []Row, i int) signal.Value {
	if i+1 < flowWindow {
		return signal.Unavailable()
	}
	sum := 0.0
	for j := i + 1 - flowWindow; j <= i; j++ {
		sum += math.Abs(rows[j].FlowProxy)
	}
	base := sum / float64(flowWindow)
	if base < flowBaseFloor {
		base = flowBaseFloor
	}
	raw := rows[i].FlowProxy / base * 100.0
	return signal.Available(rescale(raw, 60))
}

func trendScore(rows []Row, i int, cfg Config) signal.Value {
	maShort, okS := trailingMean(rows, i, cfg.TrendShort)
	maLong, okL := trailingMean(rows, i, cfg.TrendLong)
	if !okS || !okL || maShort == 0 || maLong == 0 {
		return signal.Unavailable()
	}
	idx := rows[i].Index
	raw := cfg.TrendShortW*(idx/maShort-1)*100 + cfg.TrendLongW*(idx/maLong-1)*100
	return signal.Available(rescale(raw, 20))
}

// macroScore inverts the headwind: a weakening currency or rising rates
// push the score negative. Gaps contribute zero, never unavailability.
func macroScore(r Row) signal.Value {
	fx := r.FX20dPct.Or(0)
	rate := r.Rate20d.Or(0)
	raw := -(0.6*fx + 0.4*rate)
	return signal.Available(rescale(raw, 5))
}

func breadthScore(rows []Row, i int) signal.Value {
	if i+1 < breadthRange {
		return signal.Unavailable()
	}
	low, high := math.Inf(1), math.Inf(-1)
	for j := i + 1 - breadthRange; j <= i; j++ {
		if rows[j].Index < low {
			low = rows[j].Index
		}
		if rows[j].Index > high {
			high = rows[j].Index
		}
	}
	rng := high - low
	if rng == 0 {
		return signal.Unavailable()
	}
	closePos := (rows[i].Index - low) / rng * 100.0

	ma20, ok := trailingMean(rows, i, breadthMA)
	if !ok || ma20 == 0 {
		return signal.Unavailable()
	}
	maGap := (rows[i].Index/ma20 - 1) * 100.0

	raw := 0.7*((closePos-50)/50*100) + 0.3*rescale(maGap, 10)
	return signal.Available(raw)
}

func combine(s Snapshot, w Weights) signal.Value {
	flow, okF := s.Flow.Float()
	trend, okT := s.Trend.Float()
	macro := s.Macro.Or(0)
	breadth, okB := s.Breadth.Float()
	if !okF || !okT || !okB {
		return signal.Unavailable()
	}
	return signal.Available(w.Flow*flow + w.Trend*trend + w.Macro*macro + w.Breadth*breadth)
}

func trailingMean(rows []Row, i, window int) (float64, bool) {
	if i+1 < window {
		return 0, false
	}
	sum := 0.0
	for j := i + 1 - window; j <= i; j++ {
		sum += rows[j].Index
	}
	return sum / float64(window), true
}

func forwardFillMacro(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	lastFX, lastRate := signal.Unavailable(), signal.Unavailable()
	for i := range out {
		if out[i].FX20dPct.Ok() {
			lastFX = out[i].FX20dPct
		} else {
			out[i].FX20dPct = lastFX
		}
		if out[i].Rate20d.Ok() {
			lastRate = out[i].Rate20d
		} else {
			out[i].Rate20d = lastRate
		}
	}
	return out
}

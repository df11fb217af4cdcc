package composite

import (
	"sort"
	"time"

	"go-market-reporter/internal/entity"
)

// ETFSpec is one basket member of the investor-flow proxy. Sign flips
// inverse products so that buying them reads as bearish pressure.
type ETFSpec struct {
	Ticker    string
	Weight    float64
	Sign      float64
	VolWindow int
}

// BroadBasket proxies institutional flow into the broad segment: the
// plain index tracker plus its leveraged and inverse siblings.
func BroadBasket() []ETFSpec {
	return []ETFSpec{
		{Ticker: "069500.KS", Weight: 1.0, Sign: 1, VolWindow: 20},
		{Ticker: "122630.KS", Weight: 1.5, Sign: 1, VolWindow: 20},
		{Ticker: "114800.KS", Weight: 1.5, Sign: -1, VolWindow: 20},
	}
}

// SmallCapBasket is the KOSDAQ150 equivalent with slightly hotter
// leverage weights and a longer volume baseline.
func SmallCapBasket() []ETFSpec {
	return []ETFSpec{
		{Ticker: "229200.KS", Weight: 1.0, Sign: 1, VolWindow: 30},
		{Ticker: "233740.KS", Weight: 1.7, Sign: 1, VolWindow: 30},
		{Ticker: "251340.KS", Weight: 1.7, Sign: -1, VolWindow: 30},
	}
}

// ProxyPoint is the summed basket contribution for one trading day.
type ProxyPoint struct {
	Date  time.Time
	Value float64
}

const (
	proxyStrengthMA = 5
	volRatioCap     = 10.0
)

// FlowProxy turns the basket's price/volume series into a daily flow
// pressure number. Per ETF and day: price strength is the gap to its
// 5-day average close, the volume ratio is today's volume against its
// rolling average capped at 10x, and the contribution is
// sign * weight * strength * ratio. Contributions are summed across
// whichever basket members have enough history that day.
func FlowProxy(series map[string][]entity.Candle, basket []ETFSpec) []ProxyPoint {
	sums := make(map[time.Time]float64)
	seen := make(map[time.Time]bool)

	for _, spec := range basket {
		candles := series[spec.Ticker]
		for i, c := range candles {
			day := c.Date
			seen[day] = true

			need := spec.VolWindow
			if proxyStrengthMA > need {
				need = proxyStrengthMA
			}
			if i+1 < need {
				continue
			}

			ma5 := 0.0
			for j := i + 1 - proxyStrengthMA; j <= i; j++ {
				ma5 += candles[j].Close
			}
			ma5 /= proxyStrengthMA
			if ma5 == 0 {
				continue
			}
			strength := (c.Close/ma5 - 1.0) * 100.0

			volMean := 0.0
			for j := i + 1 - spec.VolWindow; j <= i; j++ {
				volMean += candles[j].Volume
			}
			volMean /= float64(spec.VolWindow)
			if volMean == 0 {
				continue
			}
			ratio := c.Volume / volMean
			if ratio < 0 {
				ratio = 0
			}
			if ratio > volRatioCap {
				ratio = volRatioCap
			}

			sums[day] += spec.Sign * spec.Weight * strength * ratio
		}
	}

	out := make([]ProxyPoint, 0, len(seen))
	for day := range seen {
		out = append(out, ProxyPoint{Date: day, Value: sums[day]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

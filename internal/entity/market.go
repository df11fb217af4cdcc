package entity

import "time"

// Candle is a single OHLCV bar. Bars are ordered oldest first.
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is one row of a whole-market snapshot for a trade date.
type Quote struct {
	Ticker        string
	Name          string
	Market        string
	Close         float64
	ChangePct     float64
	Turnover      float64
	MarketCap     float64
	TurnoverRatio float64
}

// InvestorFlow is the net traded value of institutional and foreign
// investors for one ticker on one trading day.
type InvestorFlow struct {
	Date          time.Time
	Institutional float64
	Foreign       float64
}

// Net returns the combined institutional plus foreign net value.
func (f InvestorFlow) Net() float64 {
	return f.Institutional + f.Foreign
}

// Headline is a market news item used to decorate reports.
type Headline struct {
	Title       string
	Link        string
	Source      string
	PublishedAt time.Time
}

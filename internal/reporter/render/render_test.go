package render

import (
	"testing"

	"go-market-reporter/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGapRisk(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.GapRisk(GapRiskView{
		TradeDate:   "20250616",
		GeneratedAt: "2025-06-16 08:00 KST",
		Markets: []GapRiskMarket{
			{
				Name:          "KOSPI",
				UpScore:       12,
				DownScore:     74,
				UpLevel:       "Low",
				DownLevel:     "High",
				DownDrivers:   []string{"S&P 500 futures fell sharply"},
				Actions:       []string{"Consider reducing exposure at the open"},
				DurationLabel: "High",
				DurationText:  "1-3 days",
			},
		},
		Signals: []SignalRow{
			{Key: "spx_ret_d", Description: "S&P 500 futures daily return", Value: "-2.10", Unit: "%", Available: true},
			{Key: "move_level", Description: "MOVE index level", Available: false},
		},
		Headlines: []entity.Headline{{Title: "Headline one", Link: "https://example.com/1", Source: "example"}},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "KOSPI")
	assert.Contains(t, html, "74")
	assert.Contains(t, html, "S&amp;P 500 futures fell sharply")
	assert.Contains(t, html, "badge high")
	assert.Contains(t, html, "n/a")
	assert.Contains(t, html, "Headline one")
}

func TestRenderMarketSummary(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.MarketSummary(MarketSummaryView{
		TradeDate: "20250616",
		Markets: []SummaryMarket{
			{
				Name:      "KOSPI 200",
				Composite: "31.4",
				Band:      "Bullish",
				Flow:      "40.0",
				Trend:     "22.5",
				Macro:     "-3.0",
				Breadth:   "55.1",
				Guide:     "Uptrend intact.",
				Recent:    []string{"20", "24", "31"},
			},
		},
		Overall: "Both segments lean bullish.",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "KOSPI 200")
	assert.Contains(t, html, "31.4")
	assert.Contains(t, html, "Bullish")
	assert.Contains(t, html, "Both segments lean bullish.")
}

func TestRenderSupply(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.Supply(SupplyView{
		TradeDate: "20250616",
		Sections: []SupplySection{
			{
				Title: "Premium accumulation",
				Note:  "Three straight days of net buying.",
				Rows: []SupplyRow{
					{Name: "Alpha Corp", Ticker: "000001", Close: "12,500", Score: "85.00", Premium: true},
				},
			},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Premium accumulation")
	assert.Contains(t, html, "Alpha Corp")
	assert.Contains(t, html, "85.00")
}

func TestRenderPremium(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.Premium(PremiumView{
		TradeDate: "20250616",
		Recommend: []PremiumRow{
			{Market: "KOSPI", Name: "Beta Corp", Ticker: "000002", Is52wHigh: true, Pattern: "Strong breakout", Probability: "88", Strong: true},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Beta Corp")
	assert.Contains(t, html, "Strong breakout")
	assert.Contains(t, html, "88")
}

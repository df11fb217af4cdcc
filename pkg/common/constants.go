package common

// Report type tags carried in report metadata and used for delivery routing.
const (
	ReportTypeGapRisk       = "gap_risk"
	ReportTypeMarketSummary = "market_summary"
	ReportTypeSupply        = "supply"
	ReportTypePremium       = "premium_stock"
)

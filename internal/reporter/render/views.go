package render

import "go-market-reporter/internal/entity"

// SignalRow is one formatted line of the signal table.
type SignalRow struct {
	Key         string
	Description string
	Value       string
	Unit        string
	Available   bool
}

// GapRiskMarket is one market block of the gap-risk report.
type GapRiskMarket struct {
	Name          string
	UpScore       int
	DownScore     int
	UpLevel       string
	DownLevel     string
	UpDrivers     []string
	DownDrivers   []string
	Actions       []string
	DurationLabel string
	DurationText  string
}

// GapRiskView is the full gap-risk template payload.
type GapRiskView struct {
	TradeDate   string
	GeneratedAt string
	Markets     []GapRiskMarket
	Signals     []SignalRow
	Headlines   []entity.Headline
}

// SummaryMarket is one segment block of the market-summary report.
type SummaryMarket struct {
	Name         string
	Composite    string
	Band         string
	Flow         string
	Trend        string
	Macro        string
	Breadth      string
	TrendComment string
	Guide        string
	Recent       []string
}

// MarketSummaryView is the full market-summary template payload.
type MarketSummaryView struct {
	TradeDate   string
	GeneratedAt string
	Markets     []SummaryMarket
	Overall     string
	Headlines   []entity.Headline
}

// SupplyRow is one candidate line in a supply report section.
type SupplyRow struct {
	Name          string
	Ticker        string
	Close         string
	ChangePct     string
	MarketCapB    string
	TurnoverB     string
	Return3D      string
	Return5D      string
	Net1B         string
	Net3B         string
	Net5B         string
	Flow1Turnover string
	Flow3Mcap     string
	Score         string
	Premium       bool
}

// SupplySection is one bucket of the supply report with its
// explanation line.
type SupplySection struct {
	Title string
	Note  string
	Rows  []SupplyRow
}

// SupplyView is the full supply template payload.
type SupplyView struct {
	TradeDate   string
	GeneratedAt string
	Sections    []SupplySection
}

// PremiumRow is one stock line of the premium report.
type PremiumRow struct {
	Market      string
	Name        string
	Ticker      string
	Close       string
	ChangePct   string
	TurnoverB   string
	MarketCapB  string
	Is52wHigh   bool
	Gap52       string
	FromLow     string
	NetForeignB string
	NetInstB    string
	Pattern     string
	Strategy    string
	Probability string
	Strong      bool
}

// PremiumView is the full premium template payload.
type PremiumView struct {
	TradeDate   string
	GeneratedAt string
	Recommend   []PremiumRow
	Premium     []PremiumRow
	Watch       []PremiumRow
}

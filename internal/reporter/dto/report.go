package dto

import "time"

// Report is a fully rendered deliverable: standalone HTML plus the
// metadata notifiers and the HTTP surface need.
type Report struct {
	Type        string
	TradeDate   string
	GeneratedAt time.Time
	HTML        string
	Metadata    map[string]string
}

// Filename is the canonical output filename for the report.
func (r Report) Filename() string {
	return r.Type + "_report_" + r.TradeDate + ".html"
}

// Package render turns computed report data into standalone HTML
// documents suited for mobile reading and Telegram delivery.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed report templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates once at startup.
func New() (*Renderer, error) {
	t, err := template.New("reports").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// GapRisk renders the overnight gap-risk report.
func (r *Renderer) GapRisk(view GapRiskView) (string, error) {
	return r.execute("gap_risk.html", view)
}

// MarketSummary renders the composite market-condition report.
func (r *Renderer) MarketSummary(view MarketSummaryView) (string, error) {
	return r.execute("market_summary.html", view)
}

// Supply renders the accumulation (supply/demand) report.
func (r *Renderer) Supply(view SupplyView) (string, error) {
	return r.execute("supply.html", view)
}

// Premium renders the premium stock report.
func (r *Renderer) Premium(view PremiumView) (string, error) {
	return r.execute("premium.html", view)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render: execute %s: %w", name, err)
	}
	return sb.String(), nil
}

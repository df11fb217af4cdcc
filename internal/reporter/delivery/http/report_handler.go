package http

import (
	"net/http"

	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportSource exposes the most recent rendered report per type.
type ReportSource interface {
	Latest(reportType string) (dto.Report, bool)
	Types() []string
}

// ReportHandler serves the latest rendered reports over HTTP.
type ReportHandler struct {
	source ReportSource
	logger *logger.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(source ReportSource, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{source: source, logger: logger}
}

// RegisterRoutes registers the report routes to the Echo group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListReports)
	g.GET("/:type", h.GetLatestReport)
}

// ListReports returns the report types with a generated report available,
// with trade date and summary metadata per type.
func (h *ReportHandler) ListReports(c echo.Context) error {
	types := h.source.Types()
	reports := make([]echo.Map, 0, len(types))
	for _, t := range types {
		report, ok := h.source.Latest(t)
		if !ok {
			continue
		}
		reports = append(reports, echo.Map{
			"type":         report.Type,
			"trade_date":   report.TradeDate,
			"generated_at": report.GeneratedAt,
			"summary":      report.Metadata["summary"],
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}

// GetLatestReport serves the most recent report of the given type as HTML.
func (h *ReportHandler) GetLatestReport(c echo.Context) error {
	reportType := c.Param("type")
	report, ok := h.source.Latest(reportType)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no report generated yet for type " + reportType})
	}

	c.Response().Header().Set("X-Trade-Date", report.TradeDate)
	return c.HTML(http.StatusOK, report.HTML)
}

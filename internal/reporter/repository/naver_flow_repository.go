package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/utils"

	"github.com/PuerkitoBio/goquery"
)

// FallbackFlowRepository scrapes investor flows from the Naver Finance
// foreign/institutional page when the KRX endpoint is unavailable.
type FallbackFlowRepository interface {
	GetInvestorFlows(ctx context.Context, ticker string, days int) ([]entity.InvestorFlow, error)
}

type naverFlowRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

// NewNaverFlowRepository creates the Naver Finance HTML fallback.
func NewNaverFlowRepository(cfg *config.Config, log *logger.Logger) FallbackFlowRepository {
	return &naverFlowRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: requestTimeout(cfg, 15*time.Second),
		},
	}
}

// GetInvestorFlows parses the daily rows of the frgn page. Naver lists
// net traded share counts, so each row is converted to value with that
// day's close. Rows come back oldest first.
func (r *naverFlowRepository) GetInvestorFlows(ctx context.Context, ticker string, days int) ([]entity.InvestorFlow, error) {
	pageURL := fmt.Sprintf("%s/item/frgn.naver?code=%s", r.cfg.Naver.BaseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver finance: unexpected status %d for %s", resp.StatusCode, ticker)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var flows []entity.InvestorFlow
	doc.Find("table.type2 tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 7 {
			return true
		}

		date, err := time.Parse("2006.01.02", strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			return true
		}
		close := utils.ParseNumber(cells.Eq(1).Text())
		if close <= 0 {
			return true
		}
		instShares := utils.ParseNumber(cells.Eq(5).Text())
		foreignShares := utils.ParseNumber(cells.Eq(6).Text())

		flows = append(flows, entity.InvestorFlow{
			Date:          date,
			Institutional: instShares * close,
			Foreign:       foreignShares * close,
		})
		return len(flows) < days
	})

	if len(flows) == 0 {
		return nil, fmt.Errorf("naver finance: no flow rows parsed for %s", ticker)
	}

	sort.Slice(flows, func(i, j int) bool { return flows[i].Date.Before(flows[j].Date) })

	r.log.DebugContext(ctx, "Scraped fallback investor flows",
		logger.StringField("ticker", ticker),
		logger.IntField("rows", len(flows)))
	return flows, nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/utils"

	"golang.org/x/time/rate"
)

// KRXRepository talks to the KRX data portal's JSON endpoint.
type KRXRepository interface {
	GetMarketSnapshot(ctx context.Context, tradeDate string) ([]entity.Quote, error)
	GetIssueOHLCV(ctx context.Context, ticker, from, to string) ([]entity.Candle, error)
	GetInvestorFlows(ctx context.Context, ticker, from, to string) ([]entity.InvestorFlow, error)
	GetDailyNetValues(ctx context.Context, ticker, tradeDate string) (foreign, institutional float64, err error)
}

type krxRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewKRXRepository creates the KRX data portal client.
func NewKRXRepository(cfg *config.Config, log *logger.Logger) KRXRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.KRX.MaxRequestPerMinute)
	return &krxRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: requestTimeout(cfg, 25*time.Second),
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// GetMarketSnapshot returns the whole-market quote list for a trade
// date. ETF/ETN/SPAC wrappers and preferred shares are filtered out, as
// are rows with no turnover or market cap.
func (r *krxRepository) GetMarketSnapshot(ctx context.Context, tradeDate string) ([]entity.Quote, error) {
	body, err := r.post(ctx, url.Values{
		"bld":   {dto.KrxBldMarketSnapshot},
		"mktId": {"ALL"},
		"trdDd": {tradeDate},
		"share": {"1"},
		"money": {"1"},
	})
	if err != nil {
		return nil, err
	}

	var resp dto.KrxSnapshotResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	var quotes []entity.Quote
	for _, row := range resp.Rows() {
		if isWrapperOrPreferred(row.Name) {
			continue
		}
		q := entity.Quote{
			Ticker:    row.Ticker,
			Name:      row.Name,
			Market:    row.Market,
			Close:     utils.ParseNumber(row.Close),
			ChangePct: utils.ParseNumber(row.ChangePct),
			Turnover:  utils.ParseNumber(row.Turnover),
			MarketCap: utils.ParseNumber(row.MarketCap),
		}
		if q.Turnover <= 0 || q.MarketCap <= 0 {
			continue
		}
		q.TurnoverRatio = q.Turnover / q.MarketCap * 100.0
		quotes = append(quotes, q)
	}

	r.log.DebugContext(ctx, "Fetched KRX market snapshot",
		logger.StringField("trade_date", tradeDate),
		logger.IntField("issues", len(quotes)))
	return quotes, nil
}

func (r *krxRepository) GetIssueOHLCV(ctx context.Context, ticker, from, to string) ([]entity.Candle, error) {
	body, err := r.post(ctx, url.Values{
		"bld":        {dto.KrxBldIssueOHLCV},
		"isuCd":      {ticker},
		"strtDd":     {from},
		"endDd":      {to},
		"adjStkprc_check": {"Y"},
	})
	if err != nil {
		return nil, err
	}

	var resp dto.KrxOHLCVResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	rows := resp.Rows()
	candles := make([]entity.Candle, 0, len(rows))
	// rows arrive newest first
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		date, err := parseKrxDate(row.Date)
		if err != nil {
			continue
		}
		candles = append(candles, entity.Candle{
			Date:   date,
			Open:   utils.ParseNumber(row.Open),
			High:   utils.ParseNumber(row.High),
			Low:    utils.ParseNumber(row.Low),
			Close:  utils.ParseNumber(row.Close),
			Volume: utils.ParseNumber(row.Volume),
		})
	}
	return candles, nil
}

func (r *krxRepository) GetInvestorFlows(ctx context.Context, ticker, from, to string) ([]entity.InvestorFlow, error) {
	body, err := r.post(ctx, url.Values{
		"bld":    {dto.KrxBldInvestorByDate},
		"isuCd":  {ticker},
		"strtDd": {from},
		"endDd":  {to},
		"money":  {"1"},
	})
	if err != nil {
		return nil, err
	}

	var resp dto.KrxInvestorByDateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	rows := resp.Rows()
	flows := make([]entity.InvestorFlow, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		date, err := parseKrxDate(row.Date)
		if err != nil {
			continue
		}
		flows = append(flows, entity.InvestorFlow{
			Date:          date,
			Institutional: utils.ParseNumber(row.InstitutionalValue),
			Foreign:       utils.ParseNumber(row.ForeignValue),
		})
	}
	return flows, nil
}

// GetDailyNetValues returns the foreign and institutional net traded
// value for one issue on one day.
func (r *krxRepository) GetDailyNetValues(ctx context.Context, ticker, tradeDate string) (float64, float64, error) {
	body, err := r.post(ctx, url.Values{
		"bld":    {dto.KrxBldInvestorSnapshot},
		"isuCd":  {ticker},
		"strtDd": {tradeDate},
		"endDd":  {tradeDate},
		"money":  {"1"},
	})
	if err != nil {
		return 0, 0, err
	}

	var resp dto.KrxInvestorSnapshotResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, 0, err
	}

	var foreign, institutional float64
	for _, row := range resp.Rows() {
		switch {
		case strings.Contains(row.InvestorName, "외국인"):
			foreign += utils.ParseNumber(row.NetValue)
		case strings.Contains(row.InvestorName, "기관"):
			institutional += utils.ParseNumber(row.NetValue)
		}
	}
	return foreign, institutional, nil
}

func (r *krxRepository) post(ctx context.Context, form url.Values) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := r.cfg.KRX.BaseURL + "/comm/bldAttendant/getJsonData.cmd"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", r.cfg.KRX.BaseURL)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("krx: unexpected status %d", resp.StatusCode)
	}
	return body, nil
}

func parseKrxDate(s string) (time.Time, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", "")
	s = strings.ReplaceAll(s, "-", "")
	return time.Parse("20060102", s)
}

// isWrapperOrPreferred drops ETF/ETN/SPAC wrappers and preferred shares
// from the common-stock universe.
func isWrapperOrPreferred(name string) bool {
	if strings.Contains(name, "ETF") || strings.Contains(name, "ETN") ||
		strings.Contains(name, "스팩") || strings.Contains(name, "SPAC") {
		return true
	}
	return strings.HasSuffix(name, "우")
}

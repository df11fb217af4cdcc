package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// MarketDataRepository fetches OHLCV series from the Yahoo Finance
// chart API.
type MarketDataRepository interface {
	GetSeries(ctx context.Context, param dto.GetSeriesParam) ([]entity.Candle, error)
	GetSeriesWithFallback(ctx context.Context, main, alt dto.GetSeriesParam) ([]entity.Candle, error)
}

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	seriesCache    *cache.Cache
}

// NewMarketDataRepository creates the Yahoo Finance chart client with a
// shared request limiter and a short-lived series cache, so the four
// reports can overlap without refetching the same ticker.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	ttl := cfg.YahooFinance.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: requestTimeout(cfg, 15*time.Second),
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		seriesCache:    cache.New(ttl, 2*ttl),
	}
}

func (r *marketDataRepository) GetSeries(ctx context.Context, param dto.GetSeriesParam) ([]entity.Candle, error) {
	cacheKey := param.Symbol + "|" + param.Interval + "|" + param.Range
	if cached, found := r.seriesCache.Get(cacheKey); found {
		return cached.([]entity.Candle), nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		r.cfg.YahooFinance.BaseURL, url.PathEscape(param.Symbol),
		url.QueryEscape(param.Interval), url.QueryEscape(param.Range))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

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
		return nil, fmt.Errorf("yahoo finance: unexpected status %d for %s", resp.StatusCode, param.Symbol)
	}

	var chart dto.YahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance: %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo finance: empty result for %s", param.Symbol)
	}

	candles := chartToCandles(chart)
	r.log.DebugContext(ctx, "Fetched market data series",
		logger.StringField("symbol", param.Symbol),
		logger.StringField("interval", param.Interval),
		logger.IntField("bars", len(candles)))

	r.seriesCache.SetDefault(cacheKey, candles)
	return candles, nil
}

// GetSeriesWithFallback tries the main symbol once and falls back to
// the alternative on error or an empty series. Futures symbols are
// occasionally blocked while their micro contracts still resolve.
func (r *marketDataRepository) GetSeriesWithFallback(ctx context.Context, main, alt dto.GetSeriesParam) ([]entity.Candle, error) {
	candles, err := r.GetSeries(ctx, main)
	if err == nil && len(candles) > 0 {
		return candles, nil
	}
	if err != nil {
		r.log.WarnContext(ctx, "Primary symbol failed, trying fallback",
			logger.StringField("main", main.Symbol),
			logger.StringField("alt", alt.Symbol),
			logger.ErrorField(err))
	}
	return r.GetSeries(ctx, alt)
}

func chartToCandles(chart dto.YahooChartResponse) []entity.Candle {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	candles := make([]entity.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := deref(quote.Close, i)
		if c == nil {
			continue
		}
		candle := entity.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *c,
		}
		if v := deref(quote.Open, i); v != nil {
			candle.Open = *v
		} else {
			candle.Open = *c
		}
		if v := deref(quote.High, i); v != nil {
			candle.High = *v
		} else {
			candle.High = *c
		}
		if v := deref(quote.Low, i); v != nil {
			candle.Low = *v
		} else {
			candle.Low = *c
		}
		if v := deref(quote.Volume, i); v != nil {
			candle.Volume = *v
		}
		candles = append(candles, candle)
	}
	return candles
}

func deref(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}

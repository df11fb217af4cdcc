package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/delivery"
	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/internal/reporter/pattern"
	"go-market-reporter/internal/reporter/render"
	"go-market-reporter/internal/reporter/repository"
	"go-market-reporter/pkg/common"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/utils"
)

// Premium report admission and premium-flag thresholds, in percent and won.
const (
	premiumMinChangePct = 5.0
	premiumMinTurnover  = 100_000_000_000
	premiumMinMarketCap = 300_000_000_000
	premiumMaxFromLow   = 300.0
	closeEps            = 1e-6

	lookback52wDays     = 365
	lookbackPatternDays = 40
)

// PremiumReportService produces the 52-week-high breakout report over
// the day's strong movers.
type PremiumReportService interface {
	Generate(ctx context.Context) (dto.Report, error)
}

type premiumStock struct {
	quote       entity.Quote
	is52wHigh   bool
	gap52       float64
	fromLow     float64
	netForeign  float64
	netInst     float64
	premium     bool
	label       pattern.Label
	probability float64
}

type premiumReportService struct {
	cfg          *config.Config
	log          *logger.Logger
	krx          repository.KRXRepository
	fallbackFlow repository.FallbackFlowRepository
	renderer     *render.Renderer
	store        *ReportStore
	notifier     delivery.Notifier
}

// NewPremiumReportService wires the premium stock report pipeline.
func NewPremiumReportService(
	cfg *config.Config,
	log *logger.Logger,
	krx repository.KRXRepository,
	fallbackFlow repository.FallbackFlowRepository,
	renderer *render.Renderer,
	store *ReportStore,
	notifier delivery.Notifier,
) PremiumReportService {
	return &premiumReportService{
		cfg:          cfg,
		log:          log,
		krx:          krx,
		fallbackFlow: fallbackFlow,
		renderer:     renderer,
		store:        store,
		notifier:     notifier,
	}
}

func (s *premiumReportService) Generate(ctx context.Context) (dto.Report, error) {
	now := utils.TimeNowKST()
	tradeDate := utils.LastWeekday(now)

	snapshot, err := s.krx.GetMarketSnapshot(ctx, tradeDate)
	if err != nil {
		return dto.Report{}, fmt.Errorf("market snapshot: %w", err)
	}

	var movers []entity.Quote
	for _, q := range snapshot {
		if q.Close <= 0 || q.MarketCap < premiumMinMarketCap {
			continue
		}
		if q.ChangePct < premiumMinChangePct || q.Turnover < premiumMinTurnover {
			continue
		}
		movers = append(movers, q)
	}
	s.log.InfoContext(ctx, "Premium movers selected",
		logger.IntField("snapshot", len(snapshot)),
		logger.IntField("movers", len(movers)))

	stocks := s.enrichAll(ctx, movers, tradeDate)

	var recommend, premium, watch []premiumStock
	for _, st := range stocks {
		switch {
		case st.premium && (st.label == pattern.StrongBreakout || st.label == pattern.MildBreakout):
			recommend = append(recommend, st)
		case st.premium:
			premium = append(premium, st)
		default:
			watch = append(watch, st)
		}
	}
	for _, bucket := range [][]premiumStock{recommend, premium, watch} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].probability > bucket[j].probability
		})
	}

	view := render.PremiumView{
		TradeDate:   tradeDate,
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Recommend:   premiumRows(recommend),
		Premium:     premiumRows(premium),
		Watch:       premiumRows(watch),
	}

	html, err := s.renderer.Premium(view)
	if err != nil {
		return dto.Report{}, err
	}

	report := dto.Report{
		Type:        common.ReportTypePremium,
		TradeDate:   tradeDate,
		GeneratedAt: now,
		HTML:        html,
		Metadata: map[string]string{
			"summary": fmt.Sprintf("picks %d · premium %d · watch %d",
				len(recommend), len(premium), len(watch)),
		},
	}

	s.store.Put(report)
	if err := s.notifier.Deliver(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

func (s *premiumReportService) enrichAll(ctx context.Context, movers []entity.Quote, tradeDate string) []premiumStock {
	workers := s.cfg.Reports.DetailWorkers
	if workers <= 0 {
		workers = 4
	}

	jobs := make(chan entity.Quote)
	var mu sync.Mutex
	var stocks []premiumStock

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range jobs {
				st, ok := s.enrichOne(ctx, q, tradeDate)
				if !ok {
					continue
				}
				mu.Lock()
				stocks = append(stocks, st)
				mu.Unlock()
			}
		}()
	}

	for _, q := range movers {
		select {
		case jobs <- q:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	return stocks
}

func (s *premiumReportService) enrichOne(ctx context.Context, q entity.Quote, tradeDate string) (premiumStock, bool) {
	from := utils.DaysBack(tradeDate, s.historyDays())
	candles, err := s.krx.GetIssueOHLCV(ctx, q.Ticker, from, tradeDate)
	if err != nil || len(candles) == 0 {
		s.log.DebugContext(ctx, "Price history unavailable",
			logger.StringField("ticker", q.Ticker),
			logger.ErrorField(err))
		return premiumStock{}, false
	}

	high52, low52 := yearExtremes(candles)
	if high52 <= 0 || low52 <= 0 {
		return premiumStock{}, false
	}

	st := premiumStock{quote: q}
	st.is52wHigh = q.Close >= high52-closeEps
	if !st.is52wHigh {
		st.gap52 = (high52 - q.Close) / high52 * 100.0
	}
	st.fromLow = (q.Close/low52 - 1.0) * 100.0

	st.netForeign, st.netInst = s.netValues(ctx, q.Ticker, tradeDate)
	st.premium = st.fromLow < premiumMaxFromLow && st.netForeign > 0 && st.netInst > 0

	window := candles
	if len(window) > lookbackPatternDays {
		window = window[len(window)-lookbackPatternDays:]
	}
	st.label = pattern.Classify(window, st.is52wHigh)

	st.probability = pattern.UpsideProbability(st.label, pattern.ProbabilityInputs{
		Premium:          st.premium,
		ChangePct:        q.ChangePct,
		FromLowPct:       st.fromLow,
		NetForeign:       st.netForeign,
		NetInstitutional: st.netInst,
	})
	return st, true
}

// historyDays is the calendar span of the price history fetch, which
// the 52-week extremes are read from. Configurable so backfills can
// shorten it; the 365-day default matches the 52-week framing.
func (s *premiumReportService) historyDays() int {
	if s.cfg.Reports.HistoryDays > 0 {
		return s.cfg.Reports.HistoryDays
	}
	return lookback52wDays
}

// netValues reads the day's foreign/institutional net traded value,
// falling back to the Naver scrape. Flat zero when both sources fail.
func (s *premiumReportService) netValues(ctx context.Context, ticker, tradeDate string) (float64, float64) {
	foreign, inst, err := s.krx.GetDailyNetValues(ctx, ticker, tradeDate)
	if err == nil {
		return foreign, inst
	}

	flows, ferr := s.fallbackFlow.GetInvestorFlows(ctx, ticker, 1)
	if ferr != nil || len(flows) == 0 {
		s.log.DebugContext(ctx, "Net values unavailable, assuming flat",
			logger.StringField("ticker", ticker),
			logger.ErrorField(err))
		return 0, 0
	}
	last := flows[len(flows)-1]
	return last.Foreign, last.Institutional
}

// yearExtremes returns the highest close and lowest low of the series,
// skipping halted zero rows.
func yearExtremes(candles []entity.Candle) (high, low float64) {
	for _, c := range candles {
		if c.Close <= 0 || c.Low <= 0 {
			continue
		}
		if c.Close > high {
			high = c.Close
		}
		if low == 0 || c.Low < low {
			low = c.Low
		}
	}
	return high, low
}

func premiumRows(stocks []premiumStock) []render.PremiumRow {
	rows := make([]render.PremiumRow, 0, len(stocks))
	for _, st := range stocks {
		rows = append(rows, render.PremiumRow{
			Market:      st.quote.Market,
			Name:        st.quote.Name,
			Ticker:      st.quote.Ticker,
			Close:       utils.FormatValue(st.quote.Close, 0),
			ChangePct:   utils.FormatValue(st.quote.ChangePct, 2),
			TurnoverB:   utils.FormatValue(st.quote.Turnover/1e8, 1),
			MarketCapB:  utils.FormatValue(st.quote.MarketCap/1e8, 1),
			Is52wHigh:   st.is52wHigh,
			Gap52:       utils.FormatValue(st.gap52, 2),
			FromLow:     utils.FormatValue(st.fromLow, 1),
			NetForeignB: utils.FormatValue(st.netForeign/1e8, 2),
			NetInstB:    utils.FormatValue(st.netInst/1e8, 2),
			Pattern:     pattern.DisplayName(st.label),
			Strategy:    pattern.StrategyText(st.label),
			Probability: utils.FormatValue(st.probability, 0),
			Strong:      st.label == pattern.StrongBreakout,
		})
	}
	return rows
}

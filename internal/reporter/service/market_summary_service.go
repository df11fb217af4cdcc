package service

import (
	"context"
	"fmt"
	"time"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/composite"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/delivery"
	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/internal/reporter/render"
	"go-market-reporter/internal/reporter/repository"
	"go-market-reporter/internal/reporter/signal"
	"go-market-reporter/pkg/common"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/utils"
)

const macroWindow = 20

// MarketSummaryService produces the composite market-condition report
// for both segments.
type MarketSummaryService interface {
	Generate(ctx context.Context) (dto.Report, error)
}

type marketSummaryService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
	news       repository.NewsFeedRepository
	renderer   *render.Renderer
	store      *ReportStore
	notifier   delivery.Notifier
}

// NewMarketSummaryService wires the market-summary pipeline.
func NewMarketSummaryService(
	cfg *config.Config,
	log *logger.Logger,
	marketData repository.MarketDataRepository,
	news repository.NewsFeedRepository,
	renderer *render.Renderer,
	store *ReportStore,
	notifier delivery.Notifier,
) MarketSummaryService {
	return &marketSummaryService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		news:       news,
		renderer:   renderer,
		store:      store,
		notifier:   notifier,
	}
}

func (s *marketSummaryService) Generate(ctx context.Context) (dto.Report, error) {
	now := utils.TimeNowKST()
	tradeDate := utils.LastWeekday(now)

	fx20, rate20 := s.loadMacro(ctx)

	// A segment whose index feed is down renders as insufficient data;
	// it never takes the other segment down with it.
	broadSnaps, err := s.computeSegment(ctx, "^KS200", composite.BroadBasket(), composite.BroadConfig(), fx20, rate20)
	if err != nil {
		s.log.WarnContext(ctx, "Broad segment unavailable", logger.ErrorField(err))
		broadSnaps = nil
	}
	smallSnaps, err := s.computeSegment(ctx, "^KQ11", composite.SmallCapBasket(), composite.SmallCapConfig(), fx20, rate20)
	if err != nil {
		s.log.WarnContext(ctx, "Small-cap segment unavailable", logger.ErrorField(err))
		smallSnaps = nil
	}
	if len(broadSnaps) == 0 && len(smallSnaps) == 0 {
		return dto.Report{}, fmt.Errorf("market summary: no segment data for %s", tradeDate)
	}

	broadLast := lastComposite(broadSnaps)
	smallLast := lastComposite(smallSnaps)

	headlines, err := s.news.GetHeadlines(ctx, s.cfg.News.MaxHeadlines)
	if err != nil {
		s.log.WarnContext(ctx, "Headlines unavailable", logger.ErrorField(err))
	}

	view := render.MarketSummaryView{
		TradeDate:   tradeDate,
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Markets: []render.SummaryMarket{
			summaryView("KOSPI", broadSnaps),
			summaryView("KOSDAQ", smallSnaps),
		},
		Overall:   composite.OverallComment(broadLast, smallLast),
		Headlines: headlines,
	}

	html, err := s.renderer.MarketSummary(view)
	if err != nil {
		return dto.Report{}, err
	}

	report := dto.Report{
		Type:        common.ReportTypeMarketSummary,
		TradeDate:   tradeDate,
		GeneratedAt: now,
		HTML:        html,
		Metadata: map[string]string{
			"summary": fmt.Sprintf("KOSPI %s (%s) · KOSDAQ %s (%s)",
				formatScore(broadLast), composite.BandFor(broadLast).DisplayName(),
				formatScore(smallLast), composite.BandFor(smallLast).DisplayName()),
		},
	}

	s.store.Put(report)
	if err := s.notifier.Deliver(ctx, report); err != nil {
		return report, err
	}

	s.log.InfoContext(ctx, "Market summary generated",
		logger.StringField("kospi", formatScore(broadLast)),
		logger.StringField("kosdaq", formatScore(smallLast)))
	return report, nil
}

func (s *marketSummaryService) computeSegment(
	ctx context.Context,
	indexSymbol string,
	basket []composite.ETFSpec,
	cfg composite.Config,
	fx20, rate20 map[time.Time]signal.Value,
) ([]composite.Snapshot, error) {
	index, err := s.marketData.GetSeries(ctx, dto.GetSeriesParam{Symbol: indexSymbol, Interval: "1d", Range: "1y"})
	if err != nil {
		return nil, err
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("empty index series for %s", indexSymbol)
	}

	etfSeries := make(map[string][]entity.Candle, len(basket))
	for _, spec := range basket {
		candles, err := s.marketData.GetSeries(ctx, dto.GetSeriesParam{Symbol: spec.Ticker, Interval: "1d", Range: "1y"})
		if err != nil {
			s.log.WarnContext(ctx, "Basket ETF unavailable",
				logger.StringField("ticker", spec.Ticker),
				logger.ErrorField(err))
			continue
		}
		etfSeries[spec.Ticker] = candles
	}

	proxy := make(map[time.Time]float64)
	for _, p := range composite.FlowProxy(etfSeries, basket) {
		proxy[dateOnly(p.Date)] = p.Value
	}

	rows := make([]composite.Row, 0, len(index))
	for _, c := range index {
		day := dateOnly(c.Date)
		rows = append(rows, composite.Row{
			Date:      day,
			Index:     c.Close,
			FlowProxy: proxy[day],
			FX20dPct:  fx20[day],
			Rate20d:   rate20[day],
		})
	}

	return composite.Compute(rows, cfg), nil
}

// loadMacro builds the 20-day currency change (percent) and 10Y rate
// change (level) lookups. Both feeds are optional: a segment computed
// without them just carries a zero macro contribution.
func (s *marketSummaryService) loadMacro(ctx context.Context) (fx20, rate20 map[time.Time]signal.Value) {
	fx, err := s.marketData.GetSeries(ctx, dto.GetSeriesParam{Symbol: "KRW=X", Interval: "1d", Range: "1y"})
	if err != nil {
		s.log.WarnContext(ctx, "Currency series unavailable, macro degrades", logger.ErrorField(err))
		fx = nil
	}

	rate, err := s.marketData.GetSeries(ctx, dto.GetSeriesParam{Symbol: "^TNX", Interval: "1d", Range: "1y"})
	if err != nil {
		s.log.WarnContext(ctx, "Rate series unavailable, macro degrades to currency only", logger.ErrorField(err))
		rate = nil
	}

	fx20 = make(map[time.Time]signal.Value, len(fx))
	for i, c := range fx {
		if i < macroWindow || fx[i-macroWindow].Close == 0 {
			continue
		}
		fx20[dateOnly(c.Date)] = signal.Available((c.Close/fx[i-macroWindow].Close - 1.0) * 100.0)
	}

	rate20 = make(map[time.Time]signal.Value, len(rate))
	for i, c := range rate {
		if i < macroWindow {
			continue
		}
		rate20[dateOnly(c.Date)] = signal.Available(c.Close - rate[i-macroWindow].Close)
	}
	return fx20, rate20
}

func summaryView(name string, snaps []composite.Snapshot) render.SummaryMarket {
	view := render.SummaryMarket{
		Name:      name,
		Composite: "N/A",
		Flow:      "N/A",
		Trend:     "N/A",
		Macro:     "N/A",
		Breadth:   "N/A",
	}
	if len(snaps) == 0 {
		view.Band = composite.BandInsufficientData.DisplayName()
		view.TrendComment = composite.TrendComment(nil)
		view.Guide = composite.StrategyGuide(signal.Unavailable(), name)
		return view
	}

	last := snaps[len(snaps)-1]
	view.Composite = formatScore(last.Composite)
	view.Band = composite.BandFor(last.Composite).DisplayName()
	view.Flow = formatScore(last.Flow)
	view.Trend = formatScore(last.Trend)
	view.Macro = formatScore(last.Macro)
	view.Breadth = formatScore(last.Breadth)
	view.TrendComment = composite.TrendComment(snaps)
	view.Guide = composite.StrategyGuide(last.Composite, name)

	start := len(snaps) - 15
	if start < 0 {
		start = 0
	}
	for _, snap := range snaps[start:] {
		if v, ok := snap.Composite.Float(); ok {
			view.Recent = append(view.Recent, utils.FormatValue(v, 0))
		}
	}
	return view
}

func lastComposite(snaps []composite.Snapshot) signal.Value {
	if len(snaps) == 0 {
		return signal.Unavailable()
	}
	return snaps[len(snaps)-1].Composite
}

func formatScore(v signal.Value) string {
	f, ok := v.Float()
	if !ok {
		return "N/A"
	}
	return utils.FormatValue(f, 1)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

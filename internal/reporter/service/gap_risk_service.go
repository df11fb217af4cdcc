package service

import (
	"context"
	"fmt"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/delivery"
	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/internal/reporter/render"
	"go-market-reporter/internal/reporter/repository"
	"go-market-reporter/internal/reporter/scoring"
	"go-market-reporter/internal/reporter/signal"
	"go-market-reporter/pkg/common"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/utils"
)

// GapRiskReportService produces the overnight surge/crash risk report
// for the two Korean market segments.
type GapRiskReportService interface {
	Generate(ctx context.Context) (dto.Report, error)
}

type gapRiskReportService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
	news       repository.NewsFeedRepository
	renderer   *render.Renderer
	store      *ReportStore
	notifier   delivery.Notifier
}

// NewGapRiskReportService wires the gap-risk report pipeline.
func NewGapRiskReportService(
	cfg *config.Config,
	log *logger.Logger,
	marketData repository.MarketDataRepository,
	news repository.NewsFeedRepository,
	renderer *render.Renderer,
	store *ReportStore,
	notifier delivery.Notifier,
) GapRiskReportService {
	return &gapRiskReportService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		news:       news,
		renderer:   renderer,
		store:      store,
		notifier:   notifier,
	}
}

// signalTableOrder fixes the presentation order of the signal snapshot.
var signalTableOrder = []string{
	signal.KeySPXRetD, signal.KeySPXRet4H,
	signal.KeyNDXRetD, signal.KeyNDXRet4H,
	signal.KeyBTCRetD, signal.KeyBTCRet3H,
	signal.KeyTNXChgBps,
	signal.KeyVIXLevel, signal.KeyVIXChg,
	signal.KeyVIX9DLevel, signal.KeyVIX9DChg,
	signal.KeyVIXSpread, signal.KeyMOVELevel,
	signal.KeyUSDKRWDiff, signal.KeyDXYChg,
	signal.KeyKOSPIRetD,
	signal.KeyKosdaqRetD, signal.KeyKosdaqATR5Pct, signal.KeyKosdaqLongRed,
}

func (s *gapRiskReportService) Generate(ctx context.Context) (dto.Report, error) {
	now := utils.TimeNowKST()
	tradeDate := utils.LastWeekday(now)

	inputs := s.fetchGlobalInputs(ctx)
	kosdaq := s.fetchWithFallback(ctx, "KQ150.KS", "229200.KS", "1d", "30d")

	signals := signal.BuildGlobalSignals(inputs)
	for key, sig := range signal.BuildSmallCapSignals(kosdaq) {
		signals[key] = sig
	}

	broad := scoring.NewScorer(scoring.BroadMarketRules()).Score(signals)
	small := scoring.NewScorer(scoring.SmallCapRules()).Score(signals)

	headlines, err := s.news.GetHeadlines(ctx, s.cfg.News.MaxHeadlines)
	if err != nil {
		s.log.WarnContext(ctx, "Headlines unavailable", logger.ErrorField(err))
	}

	view := render.GapRiskView{
		TradeDate:   tradeDate,
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Markets: []render.GapRiskMarket{
			marketView("KOSPI", broad),
			marketView("KOSDAQ", small),
		},
		Signals:   signalRows(signals),
		Headlines: headlines,
	}

	html, err := s.renderer.GapRisk(view)
	if err != nil {
		return dto.Report{}, err
	}

	report := dto.Report{
		Type:        common.ReportTypeGapRisk,
		TradeDate:   tradeDate,
		GeneratedAt: now,
		HTML:        html,
		Metadata: map[string]string{
			"summary": fmt.Sprintf("KOSPI surge %d / crash %d · KOSDAQ surge %d / crash %d",
				broad.Upside, broad.Downside, small.Upside, small.Downside),
		},
	}

	s.store.Put(report)
	if err := s.notifier.Deliver(ctx, report); err != nil {
		return report, err
	}

	s.log.InfoContext(ctx, "Gap risk report generated",
		logger.IntField("kospi_up", broad.Upside),
		logger.IntField("kospi_down", broad.Downside),
		logger.IntField("kosdaq_up", small.Upside),
		logger.IntField("kosdaq_down", small.Downside))
	return report, nil
}

func (s *gapRiskReportService) fetchGlobalInputs(ctx context.Context) signal.GlobalInputs {
	return signal.GlobalInputs{
		SPXDaily:   s.fetchWithFallback(ctx, "ES=F", "MES=F", "1d", "3d"),
		SPXHourly:  s.fetchWithFallback(ctx, "ES=F", "MES=F", "60m", "1d"),
		NDXDaily:   s.fetchWithFallback(ctx, "NQ=F", "MNQ=F", "1d", "3d"),
		NDXHourly:  s.fetchWithFallback(ctx, "NQ=F", "MNQ=F", "60m", "1d"),
		BTCDaily:   s.fetch(ctx, "BTC-USD", "1d", "5d"),
		BTCHourly:  s.fetch(ctx, "BTC-USD", "60m", "1d"),
		TNXDaily:   s.fetch(ctx, "^TNX", "1d", "10d"),
		VIXDaily:   s.fetch(ctx, "^VIX", "1d", "10d"),
		VIX9DDaily: s.fetch(ctx, "^VIX9D", "1d", "10d"),
		MOVEDaily:  s.fetch(ctx, "^MOVE", "1d", "10d"),
		USDKRW:     s.fetch(ctx, "KRW=X", "1d", "10d"),
		DXYDaily:   s.fetch(ctx, "DX-Y.NYB", "1d", "10d"),
		KOSPIDaily: s.fetchWithFallback(ctx, "KOSPI200.KS", "^KS200", "1d", "10d"),
	}
}

// fetch returns nil on error; a missing series degrades its signals to
// unavailable instead of failing the report.
func (s *gapRiskReportService) fetch(ctx context.Context, symbol, interval, rng string) []entity.Candle {
	candles, err := s.marketData.GetSeries(ctx, dto.GetSeriesParam{Symbol: symbol, Interval: interval, Range: rng})
	if err != nil {
		s.log.WarnContext(ctx, "Series unavailable",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		return nil
	}
	return candles
}

func (s *gapRiskReportService) fetchWithFallback(ctx context.Context, main, alt, interval, rng string) []entity.Candle {
	candles, err := s.marketData.GetSeriesWithFallback(ctx,
		dto.GetSeriesParam{Symbol: main, Interval: interval, Range: rng},
		dto.GetSeriesParam{Symbol: alt, Interval: interval, Range: rng})
	if err != nil {
		s.log.WarnContext(ctx, "Series unavailable",
			logger.StringField("symbol", main),
			logger.StringField("fallback", alt),
			logger.ErrorField(err))
		return nil
	}
	return candles
}

func marketView(name string, res scoring.Result) render.GapRiskMarket {
	durLabel, durText := scoring.DurationHint(res.Downside)
	return render.GapRiskMarket{
		Name:          name,
		UpScore:       res.Upside,
		DownScore:     res.Downside,
		UpLevel:       string(scoring.ScoreLevel(res.Upside)),
		DownLevel:     string(scoring.ScoreLevel(res.Downside)),
		UpDrivers:     scoring.Drivers(res.UpsideFirings),
		DownDrivers:   scoring.Drivers(res.DownsideFirings),
		Actions:       scoring.Actions(name, res.Upside, res.Downside),
		DurationLabel: durLabel,
		DurationText:  durText,
	}
}

func signalRows(signals signal.Set) []render.SignalRow {
	rows := make([]render.SignalRow, 0, len(signalTableOrder))
	for _, key := range signalTableOrder {
		sig, ok := signals[key]
		if !ok {
			continue
		}
		row := render.SignalRow{
			Key:         key,
			Description: sig.Description,
			Unit:        sig.Unit,
			Available:   sig.Value.Ok(),
		}
		if v, ok := sig.Value.Float(); ok {
			row.Value = utils.FormatValue(v, 2)
		}
		rows = append(rows, row)
	}
	return rows
}

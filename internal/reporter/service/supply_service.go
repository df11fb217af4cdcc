package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/accumulation"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/delivery"
	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/internal/reporter/render"
	"go-market-reporter/internal/reporter/repository"
	"go-market-reporter/pkg/common"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/utils"
)

const flowLookbackDays = 7

// SupplyReportService produces the institutional/foreign accumulation
// report.
type SupplyReportService interface {
	Generate(ctx context.Context) (dto.Report, error)
}

type supplyReportService struct {
	cfg          *config.Config
	log          *logger.Logger
	krx          repository.KRXRepository
	fallbackFlow repository.FallbackFlowRepository
	renderer     *render.Renderer
	store        *ReportStore
	notifier     delivery.Notifier
}

// NewSupplyReportService wires the accumulation report pipeline.
func NewSupplyReportService(
	cfg *config.Config,
	log *logger.Logger,
	krx repository.KRXRepository,
	fallbackFlow repository.FallbackFlowRepository,
	renderer *render.Renderer,
	store *ReportStore,
	notifier delivery.Notifier,
) SupplyReportService {
	return &supplyReportService{
		cfg:          cfg,
		log:          log,
		krx:          krx,
		fallbackFlow: fallbackFlow,
		renderer:     renderer,
		store:        store,
		notifier:     notifier,
	}
}

func (s *supplyReportService) Generate(ctx context.Context) (dto.Report, error) {
	now := utils.TimeNowKST()
	tradeDate := utils.LastWeekday(now)

	snapshot, err := s.krx.GetMarketSnapshot(ctx, tradeDate)
	if err != nil {
		return dto.Report{}, fmt.Errorf("market snapshot: %w", err)
	}

	var universe []entity.Quote
	for _, q := range snapshot {
		if accumulation.InUniverse(q) {
			universe = append(universe, q)
		}
	}
	s.log.InfoContext(ctx, "Supply universe selected",
		logger.IntField("snapshot", len(snapshot)),
		logger.IntField("universe", len(universe)))

	candidates := s.analyzeAll(ctx, universe, tradeDate)
	sections := accumulation.Split(candidates)

	view := render.SupplyView{
		TradeDate:   tradeDate,
		GeneratedAt: now.Format("2006-01-02 15:04"),
		Sections: []render.SupplySection{
			{
				Title: "Quiet accumulation (premium)",
				Note:  "Three straight sessions of combined net buying while the 3-day return is still 10% or less.",
				Rows:  supplyRows(sections.Premium),
			},
			{
				Title: "Fast money",
				Note:  "Up 10%+ today on net buying worth 3%+ of the day's turnover, before overheating.",
				Rows:  supplyRows(sections.Fast),
			},
			{
				Title: "Overheated",
				Note:  "3-day return of 20%+ or 5-day return of 30%+. Chasing here carries outsized risk.",
				Rows:  supplyRows(sections.Overheat),
			},
			{
				Title: "Building interest",
				Note:  "3-day net buying worth 0.3%+ of market cap with the price still contained.",
				Rows:  supplyRows(sections.Interest),
			},
		},
	}

	html, err := s.renderer.Supply(view)
	if err != nil {
		return dto.Report{}, err
	}

	report := dto.Report{
		Type:        common.ReportTypeSupply,
		TradeDate:   tradeDate,
		GeneratedAt: now,
		HTML:        html,
		Metadata: map[string]string{
			"summary": fmt.Sprintf("premium %d · fast %d · overheat %d · interest %d",
				len(sections.Premium), len(sections.Fast), len(sections.Overheat), len(sections.Interest)),
		},
	}

	s.store.Put(report)
	if err := s.notifier.Deliver(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// analyzeAll runs the per-ticker detail fetches through a bounded
// worker pool. A ticker whose detail fetch fails is skipped, not fatal.
func (s *supplyReportService) analyzeAll(ctx context.Context, universe []entity.Quote, tradeDate string) []accumulation.Candidate {
	workers := s.cfg.Reports.DetailWorkers
	if workers <= 0 {
		workers = 4
	}

	jobs := make(chan entity.Quote)
	var mu sync.Mutex
	var candidates []accumulation.Candidate

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range jobs {
				c, ok := s.analyzeOne(ctx, q, tradeDate)
				if !ok {
					continue
				}
				mu.Lock()
				candidates = append(candidates, c)
				mu.Unlock()
			}
		}()
	}

	for _, q := range universe {
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

	s.log.InfoContext(ctx, "Supply detail analysis finished",
		logger.IntField("candidates", len(candidates)))
	return candidates
}

func (s *supplyReportService) analyzeOne(ctx context.Context, q entity.Quote, tradeDate string) (accumulation.Candidate, bool) {
	from := utils.WeekdaysBack(tradeDate, flowLookbackDays)

	candles, err := s.krx.GetIssueOHLCV(ctx, q.Ticker, from, tradeDate)
	if err != nil || len(candles) == 0 {
		s.log.DebugContext(ctx, "Price history unavailable",
			logger.StringField("ticker", q.Ticker),
			logger.ErrorField(err))
		return accumulation.Candidate{}, false
	}

	flows, err := s.krx.GetInvestorFlows(ctx, q.Ticker, from, tradeDate)
	if err != nil {
		flows, err = s.fallbackFlow.GetInvestorFlows(ctx, q.Ticker, flowLookbackDays)
		if err != nil {
			s.log.DebugContext(ctx, "Investor flows unavailable, assuming flat",
				logger.StringField("ticker", q.Ticker),
				logger.ErrorField(err))
			flows = nil
		}
	}

	flowByDate := make(map[time.Time]float64, len(flows))
	for _, f := range flows {
		flowByDate[dateOnly(f.Date)] = f.Net()
	}

	closes := make([]float64, len(candles))
	netFlows := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		netFlows[i] = flowByDate[dateOnly(c.Date)]
	}

	return accumulation.Analyze(q, closes, netFlows)
}

func supplyRows(candidates []accumulation.Candidate) []render.SupplyRow {
	rows := make([]render.SupplyRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, render.SupplyRow{
			Name:          c.Name,
			Ticker:        c.Ticker,
			Close:         utils.FormatValue(c.Close, 0),
			ChangePct:     utils.FormatValue(c.ChangePct, 2),
			MarketCapB:    utils.FormatValue(c.MarketCap/1e8, 1),
			TurnoverB:     utils.FormatValue(c.Turnover/1e8, 1),
			Return3D:      utils.FormatValue(c.Return3D, 2),
			Return5D:      utils.FormatValue(c.Return5D, 2),
			Net1B:         utils.FormatValue(c.NetValue1D/1e8, 2),
			Net3B:         utils.FormatValue(c.NetValue3D/1e8, 2),
			Net5B:         utils.FormatValue(c.NetValue5D/1e8, 2),
			Flow1Turnover: utils.FormatValue(c.Flow1DPctTurnover, 2),
			Flow3Mcap:     utils.FormatValue(c.Flow3DPctMarketCap, 3),
			Score:         utils.FormatValue(c.Score, 2),
			Premium:       c.Premium,
		})
	}
	return rows
}

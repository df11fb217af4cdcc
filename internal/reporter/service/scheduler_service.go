package service

import (
	"context"
	"time"

	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs the report pipelines on their cron schedules.
type SchedulerService interface {
	Start(ctx context.Context) error
}

type reportJob interface {
	Generate(ctx context.Context) (dto.Report, error)
}

type schedulerService struct {
	cfg           *config.Config
	log           *logger.Logger
	gapRisk       GapRiskReportService
	marketSummary MarketSummaryService
	supply        SupplyReportService
	premium       PremiumReportService
}

// NewSchedulerService wires the cron runner over the four report
// services.
func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	gapRisk GapRiskReportService,
	marketSummary MarketSummaryService,
	supply SupplyReportService,
	premium PremiumReportService,
) SchedulerService {
	return &schedulerService{
		cfg:           cfg,
		log:           log,
		gapRisk:       gapRisk,
		marketSummary: marketSummary,
		supply:        supply,
		premium:       premium,
	}
}

// Start registers the configured schedules and blocks until the context
// is canceled. Schedules left empty are skipped.
func (s *schedulerService) Start(ctx context.Context) error {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return err
	}

	runner := cron.New(cron.WithLocation(loc))

	jobs := []struct {
		name string
		spec string
		job  reportJob
	}{
		{"gap_risk", s.cfg.Scheduler.GapRiskCron, s.gapRisk},
		{"market_summary", s.cfg.Scheduler.MarketSummaryCron, s.marketSummary},
		{"supply", s.cfg.Scheduler.SupplyCron, s.supply},
		{"premium", s.cfg.Scheduler.PremiumCron, s.premium},
	}
	for _, j := range jobs {
		if j.spec == "" {
			continue
		}
		name, job := j.name, j.job
		if _, err := runner.AddFunc(j.spec, func() { s.run(ctx, name, job) }); err != nil {
			return err
		}
		s.log.Info("Report scheduled",
			logger.StringField("report", j.name),
			logger.StringField("cron", j.spec))
	}

	runner.Start()
	<-ctx.Done()

	stopCtx := runner.Stop()
	<-stopCtx.Done()
	return nil
}

func (s *schedulerService) run(ctx context.Context, name string, job reportJob) {
	started := time.Now()
	s.log.InfoContext(ctx, "Report run starting", logger.StringField("report", name))

	if _, err := job.Generate(ctx); err != nil {
		s.log.ErrorContext(ctx, "Report run failed",
			logger.StringField("report", name),
			logger.ErrorField(err))
		return
	}
	s.log.InfoContext(ctx, "Report run finished",
		logger.StringField("report", name),
		logger.Float64Field("took_sec", time.Since(started).Seconds()))
}

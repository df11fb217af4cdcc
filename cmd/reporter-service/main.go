package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/internal/reporter/delivery"
	deliveryhttp "go-market-reporter/internal/reporter/delivery/http"
	"go-market-reporter/internal/reporter/render"
	"go-market-reporter/internal/reporter/repository"
	"go-market-reporter/internal/reporter/service"
	"go-market-reporter/pkg/common"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var (
	configPath string
	reportType string
)

var rootCmd = &cobra.Command{
	Use:   "market-reporter",
	Short: "Korean market risk and supply/demand report generator",
	Long:  `market-reporter scrapes market data, scores overnight risk and investor accumulation, and delivers rendered HTML reports.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generates one report (or all) and exits",
	Run:   runOnce,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the report scheduler and HTTP server",
	Run:   runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to config file")
	runCmd.Flags().StringVarP(&reportType, "report", "r", "all", "report to generate: gap_risk, market_summary, supply, premium_stock, all")
	rootCmd.AddCommand(runCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}

// app bundles the wired dependencies shared by run and serve.
type app struct {
	cfg           *config.Config
	log           *logger.Logger
	store         *service.ReportStore
	gapRisk       service.GapRiskReportService
	marketSummary service.MarketSummaryService
	supply        service.SupplyReportService
	premium       service.PremiumReportService
}

func buildApp() *app {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	renderer, err := render.New()
	if err != nil {
		appLogger.Fatal("Failed to parse report templates", logger.ErrorField(err))
	}

	notifiers := []delivery.Notifier{
		delivery.NewLocalFileNotifier(cfg.Reports.OutputDir, appLogger),
	}
	if cfg.Telegram.Enabled {
		tgClient, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram client", logger.ErrorField(err))
		}
		notifiers = append(notifiers, delivery.NewTelegramNotifier(tgClient, appLogger))
	}
	notifier := delivery.NewCompositeNotifier(notifiers...)

	marketData := repository.NewMarketDataRepository(cfg, appLogger)
	krx := repository.NewKRXRepository(cfg, appLogger)
	naverFlow := repository.NewNaverFlowRepository(cfg, appLogger)
	news := repository.NewNewsFeedRepository(cfg, appLogger)

	store := service.NewReportStore()

	return &app{
		cfg:           cfg,
		log:           appLogger,
		store:         store,
		gapRisk:       service.NewGapRiskReportService(cfg, appLogger, marketData, news, renderer, store, notifier),
		marketSummary: service.NewMarketSummaryService(cfg, appLogger, marketData, news, renderer, store, notifier),
		supply:        service.NewSupplyReportService(cfg, appLogger, krx, naverFlow, renderer, store, notifier),
		premium:       service.NewPremiumReportService(cfg, appLogger, krx, naverFlow, renderer, store, notifier),
	}
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := buildApp()
	defer func() { _ = a.log.Sync() }()

	type generator struct {
		name string
		run  func(context.Context) error
	}
	generators := []generator{
		{common.ReportTypeGapRisk, func(ctx context.Context) error { _, err := a.gapRisk.Generate(ctx); return err }},
		{common.ReportTypeMarketSummary, func(ctx context.Context) error { _, err := a.marketSummary.Generate(ctx); return err }},
		{common.ReportTypeSupply, func(ctx context.Context) error { _, err := a.supply.Generate(ctx); return err }},
		{common.ReportTypePremium, func(ctx context.Context) error { _, err := a.premium.Generate(ctx); return err }},
	}

	ran := false
	for _, g := range generators {
		if reportType != "all" && reportType != g.name {
			continue
		}
		ran = true
		if err := g.run(ctx); err != nil {
			a.log.Error("Report generation failed",
				logger.StringField("report", g.name),
				logger.ErrorField(err))
			os.Exit(1)
		}
	}
	if !ran {
		a.log.Fatal("Unknown report type", logger.StringField("report", reportType))
	}
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := buildApp()
	defer func() { _ = a.log.Sync() }()

	a.log.Info("Starting Reporter Service", logger.Field("name", a.cfg.App.Name))

	if a.cfg.Scheduler.Enabled {
		scheduler := service.NewSchedulerService(a.cfg, a.log, a.gapRisk, a.marketSummary, a.supply, a.premium)
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				a.log.Error("Scheduler stopped", logger.ErrorField(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true

	reportHandler := deliveryhttp.NewReportHandler(a.store, a.log)
	apiV1 := e.Group("/api/v1")
	reportHandler.RegisterRoutes(apiV1.Group("/reports"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf("%s:%d", a.cfg.API.Host, a.cfg.API.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			a.log.Fatal("Failed to start HTTP server", logger.ErrorField(err))
		}
	}()

	<-ctx.Done()
	a.log.Info("Shutting down Reporter Service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.log.Error("HTTP server shutdown failed", logger.ErrorField(err))
	}
}

package config

import (
	"time"

	"go-market-reporter/pkg/config"
)

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// KRX holds the configuration for the KRX market data endpoint.
type KRX struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Naver holds the configuration for the Naver Finance HTML fallback.
type Naver struct {
	BaseURL string `mapstructure:"base_url"`
}

// News holds the RSS feed configuration for report headlines.
type News struct {
	FeedURLs     []string `mapstructure:"feed_urls"`
	MaxHeadlines int      `mapstructure:"max_headlines"`
}

// Reports holds output and per-report tuning.
type Reports struct {
	OutputDir      string        `mapstructure:"output_dir"`
	HistoryDays    int           `mapstructure:"history_days"`
	DetailWorkers  int           `mapstructure:"detail_workers"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Scheduler holds the cron expressions for each report, in KST.
type Scheduler struct {
	Enabled           bool   `mapstructure:"enabled"`
	GapRiskCron       string `mapstructure:"gap_risk_cron"`
	MarketSummaryCron string `mapstructure:"market_summary_cron"`
	SupplyCron        string `mapstructure:"supply_cron"`
	PremiumCron       string `mapstructure:"premium_cron"`
}

// Config holds the full configuration for the reporter service.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	API          config.API    `mapstructure:"api"`
	Telegram     Telegram      `mapstructure:"telegram"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	KRX          KRX           `mapstructure:"krx"`
	Naver        Naver         `mapstructure:"naver"`
	News         News          `mapstructure:"news"`
	Reports      Reports       `mapstructure:"reports"`
	Scheduler    Scheduler     `mapstructure:"scheduler"`
}

// Load loads the reporter configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

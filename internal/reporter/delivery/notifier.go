// Package delivery routes rendered reports to their destinations:
// local files, Telegram, or any combination.
package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go-market-reporter/internal/reporter/dto"
	"go-market-reporter/pkg/logger"
	"go-market-reporter/pkg/telegram"
)

// Notifier delivers a rendered report to one destination.
type Notifier interface {
	Deliver(ctx context.Context, report dto.Report) error
}

type localFileNotifier struct {
	outputDir string
	log       *logger.Logger
}

// NewLocalFileNotifier writes reports into the configured output
// directory, one file per report type and trade date.
func NewLocalFileNotifier(outputDir string, log *logger.Logger) Notifier {
	return &localFileNotifier{outputDir: outputDir, log: log}
}

func (n *localFileNotifier) Deliver(ctx context.Context, report dto.Report) error {
	if err := os.MkdirAll(n.outputDir, 0o755); err != nil {
		return fmt.Errorf("delivery: create output dir: %w", err)
	}
	path := filepath.Join(n.outputDir, report.Filename())
	if err := os.WriteFile(path, []byte(report.HTML), 0o644); err != nil {
		return fmt.Errorf("delivery: write report: %w", err)
	}
	n.log.InfoContext(ctx, "Report written",
		logger.StringField("type", report.Type),
		logger.StringField("path", path))
	return nil
}

type telegramNotifier struct {
	client telegram.Notifier
	log    *logger.Logger
}

// NewTelegramNotifier sends each report as an HTML document with a
// short summary caption.
func NewTelegramNotifier(client telegram.Notifier, log *logger.Logger) Notifier {
	return &telegramNotifier{client: client, log: log}
}

func (n *telegramNotifier) Deliver(ctx context.Context, report dto.Report) error {
	caption := fmt.Sprintf("*%s report* — %s", report.Type, report.TradeDate)
	if summary := report.Metadata["summary"]; summary != "" {
		caption += "\n" + summary
	}
	if err := n.client.SendDocument(report.Filename(), []byte(report.HTML), caption); err != nil {
		return fmt.Errorf("delivery: telegram: %w", err)
	}
	n.log.InfoContext(ctx, "Report sent to Telegram", logger.StringField("type", report.Type))
	return nil
}

type compositeNotifier struct {
	notifiers []Notifier
}

// NewCompositeNotifier fans a report out to every configured notifier.
// Delivery keeps going past individual failures; the first error is
// returned after all destinations were attempted.
func NewCompositeNotifier(notifiers ...Notifier) Notifier {
	return &compositeNotifier{notifiers: notifiers}
}

func (n *compositeNotifier) Deliver(ctx context.Context, report dto.Report) error {
	var firstErr error
	for _, notifier := range n.notifiers {
		if err := notifier.Deliver(ctx, report); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

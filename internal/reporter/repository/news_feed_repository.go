package repository

import (
	"context"
	"sort"
	"time"

	"go-market-reporter/internal/entity"
	"go-market-reporter/internal/reporter/config"
	"go-market-reporter/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// NewsFeedRepository pulls market headlines from the configured RSS
// feeds for the report header sections.
type NewsFeedRepository interface {
	GetHeadlines(ctx context.Context, limit int) ([]entity.Headline, error)
}

type newsFeedRepository struct {
	cfg    *config.Config
	log    *logger.Logger
	parser *gofeed.Parser
}

// NewNewsFeedRepository creates the RSS headline source.
func NewNewsFeedRepository(cfg *config.Config, log *logger.Logger) NewsFeedRepository {
	return &newsFeedRepository{
		cfg:    cfg,
		log:    log,
		parser: gofeed.NewParser(),
	}
}

// GetHeadlines merges the configured feeds, newest first. A feed that
// fails to parse is logged and skipped; headlines are best-effort
// decoration, never a reason to fail a report.
func (r *newsFeedRepository) GetHeadlines(ctx context.Context, limit int) ([]entity.Headline, error) {
	var headlines []entity.Headline
	for _, feedURL := range r.cfg.News.FeedURLs {
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			r.log.WarnContext(ctx, "Failed to parse news feed",
				logger.StringField("url", feedURL),
				logger.ErrorField(err))
			continue
		}
		for _, item := range feed.Items {
			published := time.Time{}
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			}
			headlines = append(headlines, entity.Headline{
				Title:       item.Title,
				Link:        item.Link,
				Source:      feed.Title,
				PublishedAt: published,
			})
		}
	}

	sort.Slice(headlines, func(i, j int) bool {
		return headlines[i].PublishedAt.After(headlines[j].PublishedAt)
	})
	if limit > 0 && len(headlines) > limit {
		headlines = headlines[:limit]
	}
	return headlines, nil
}

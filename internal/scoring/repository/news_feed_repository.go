package repository

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"insider-conviction/internal/scoring/config"
	"insider-conviction/internal/scoring/dto"
	"insider-conviction/internal/signal"
	"insider-conviction/pkg/logger"
	"insider-conviction/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

const maxArticleTextLength = 4000

// NewsFeedRepository reads recent headlines for a ticker from an RSS search feed.
type NewsFeedRepository interface {
	GetArticles(ctx context.Context, ticker string, query string) ([]dto.NewsArticle, error)
}

type newsFeedRepository struct {
	cfg    config.News
	log    *logger.Logger
	parser *gofeed.Parser
	client *vendorClient
	now    func() time.Time
}

func NewNewsFeedRepository(cfg config.News, log *logger.Logger) NewsFeedRepository {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	return &newsFeedRepository{
		cfg:    cfg,
		log:    log,
		parser: parser,
		client: newVendorClient("news_feed", cfg.MaxRequestPerMinute, log),
		now:    time.Now,
	}
}

// GetArticles returns at most MaxArticles items newer than MaxArticleAgeDays, newest first as
// the feed orders them. query defaults to the ticker.
func (r *newsFeedRepository) GetArticles(ctx context.Context, ticker string, query string) ([]dto.NewsArticle, error) {
	if query == "" {
		query = ticker
	}
	feedURL := r.cfg.FeedURL
	if strings.Contains(feedURL, "%s") {
		feedURL = fmt.Sprintf(feedURL, url.QueryEscape(query))
	}

	if err := r.client.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.log.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("query_rss", feedURL))
		return nil, fmt.Errorf("%w: failed to parse news feed: %v", signal.ErrUnavailable, err)
	}

	cutoff := time.Time{}
	if r.cfg.MaxArticleAgeDays > 0 {
		cutoff = r.now().AddDate(0, 0, -r.cfg.MaxArticleAgeDays)
	}

	var articles []dto.NewsArticle
	for _, item := range feed.Items {
		if r.cfg.MaxArticles > 0 && len(articles) >= r.cfg.MaxArticles {
			break
		}
		published := time.Time{}
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		if !cutoff.IsZero() && !published.IsZero() && published.Before(cutoff) {
			continue
		}

		article := dto.NewsArticle{
			Title:       strings.TrimSpace(item.Title),
			Summary:     htmlToText(item.Description),
			Link:        item.Link,
			PublishedAt: published,
		}
		if r.cfg.ReadFullArticle && item.Link != "" {
			content, err := r.readArticle(ctx, item.Link)
			if err != nil {
				r.log.Debug("Failed to read full article", logger.ErrorField(err), logger.StringField("url", item.Link))
			} else if content != "" {
				article.Summary = content
			}
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func (r *newsFeedRepository) readArticle(ctx context.Context, link string) (string, error) {
	body, err := r.client.get(ctx, link, map[string]string{"Accept": "text/html"})
	if err != nil {
		return "", err
	}
	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}
	return utils.SafeText(htmlToText(doc.Content()), maxArticleTextLength), nil
}

func htmlToText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(html)))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

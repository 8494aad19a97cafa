package webnews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/source"
)

// Scanner crawls a configured headline listing page and extracts
// articles matching the requested topic. It expects common newsroom
// markup: <article> blocks with a heading, a link and optionally an
// <img> and a <time datetime="..."> element.
type Scanner struct {
	client *http.Client
}

var _ source.Source = (*Scanner)(nil)

// NewScanner wires an HTTP client; a nil client gets a 20s timeout default.
func NewScanner(client *http.Client) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scanner{client: client}
}

// Name identifies the strategy inside the registry.
func (s *Scanner) Name() string {
	return "webnews"
}

// Fetch downloads the listing page named by the "url" option and keeps
// up to Limit entries whose headline or teaser mentions the topic.
func (s *Scanner) Fetch(ctx context.Context, req source.Request) ([]domain.Article, error) {
	pageURL := req.Options["url"]
	if pageURL == "" {
		return nil, fmt.Errorf("webnews source requires a url option")
	}

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	sourceName := req.Options["source_name"]
	if sourceName == "" {
		sourceName = hostOf(pageURL)
	}

	topic := strings.ToLower(req.Topic)
	var articles []domain.Article
	seen := map[string]struct{}{}

	doc.Find("article").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		article, ok := parseEntry(sel, pageURL, sourceName)
		if !ok {
			return true
		}
		if topic != "" && !matchesTopic(article, topic) {
			return true
		}
		if _, dup := seen[article.URL]; dup {
			return true
		}
		seen[article.URL] = struct{}{}
		articles = append(articles, article)
		return req.Limit <= 0 || len(articles) < req.Limit
	})

	return articles, nil
}

func (s *Scanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "NewsPoster/1.0")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func parseEntry(sel *goquery.Selection, baseURL, sourceName string) (domain.Article, bool) {
	title := strings.TrimSpace(sel.Find("h1, h2, h3").First().Text())
	if title == "" {
		return domain.Article{}, false
	}

	href, _ := sel.Find("a[href]").First().Attr("href")
	href = strings.TrimSpace(href)
	if href == "" {
		return domain.Article{}, false
	}
	href = absoluteURL(baseURL, href)

	description := strings.TrimSpace(sel.Find("p").First().Text())
	imageURL, _ := sel.Find("img[src]").First().Attr("src")
	if imageURL != "" {
		imageURL = absoluteURL(baseURL, imageURL)
	}

	publishedAt := time.Time{}
	if raw, ok := sel.Find("time[datetime]").First().Attr("datetime"); ok {
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw)); err == nil {
			publishedAt = parsed
		}
	}

	return domain.Article{
		Title:       title,
		Description: description,
		Source:      sourceName,
		URL:         href,
		ImageURL:    imageURL,
		PublishedAt: publishedAt,
	}, true
}

func matchesTopic(article domain.Article, topic string) bool {
	haystack := strings.ToLower(article.Title + " " + article.Description)
	return strings.Contains(haystack, topic)
}

func absoluteURL(base, ref string) string {
	baseParsed, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refParsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseParsed.ResolveReference(refParsed).String()
}

func hostOf(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return "web"
	}
	return parsed.Host
}

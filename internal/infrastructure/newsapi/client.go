package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/source"
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

// Client fetches topic news from the NewsAPI "everything" endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ source.Source = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets a 20s timeout default.
func NewClient(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{baseURL: defaultBaseURL, apiKey: apiKey, client: client}
}

// Name identifies the strategy inside the registry.
func (c *Client) Name() string {
	return "newsapi"
}

type apiResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch queries the everything endpoint sorted by publication time and
// maps the response onto domain articles. Entries without a title are
// dropped, matching the upstream's habit of returning removed stubs.
func (c *Client) Fetch(ctx context.Context, req source.Request) ([]domain.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("newsapi key is not configured")
	}

	endpoint, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("User-Agent", "NewsPoster/1.0")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("newsapi returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q: %s", decoded.Status, decoded.Message)
	}

	articles := make([]domain.Article, 0, len(decoded.Articles))
	for _, raw := range decoded.Articles {
		if raw.Title == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Title:       raw.Title,
			Description: raw.Description,
			Author:      raw.Author,
			Source:      sourceName(raw.Source.Name),
			URL:         raw.URL,
			ImageURL:    raw.URLToImage,
			PublishedAt: parsePublishedAt(raw.PublishedAt),
		})
	}

	return articles, nil
}

func (c *Client) buildURL(req source.Request) (string, error) {
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid newsapi base url: %w", err)
	}

	query := parsed.Query()
	query.Set("q", req.Topic)
	query.Set("language", "en")
	query.Set("sortBy", "publishedAt")
	query.Set("pageSize", strconv.Itoa(req.Limit))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func parsePublishedAt(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func sourceName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

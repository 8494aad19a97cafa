package webnews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsPoster/internal/source"
)

const listingHTML = `
<html><body>
  <article>
    <h2>Climate summit opens in Geneva</h2>
    <p>Delegates gather for the annual climate talks.</p>
    <a href="/news/climate-summit">Read</a>
    <img src="/img/summit.jpg">
    <time datetime="2025-03-10T08:00:00Z">today</time>
  </article>
  <article>
    <h2>Local football results</h2>
    <p>Weekend roundup.</p>
    <a href="/news/football">Read</a>
  </article>
  <article>
    <h3>Climate policy shift announced</h3>
    <a href="/news/climate-policy">Read</a>
  </article>
  <article>
    <p>Entry without a heading is skipped.</p>
    <a href="/news/broken">Read</a>
  </article>
</body></html>`

func TestParseEntry(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	article, ok := parseEntry(doc.Find("article").First(), "https://news.example/", "news.example")
	if !ok {
		t.Fatal("parseEntry rejected a valid entry")
	}

	if article.Title != "Climate summit opens in Geneva" {
		t.Errorf("title = %q", article.Title)
	}
	if article.URL != "https://news.example/news/climate-summit" {
		t.Errorf("url = %q", article.URL)
	}
	if article.ImageURL != "https://news.example/img/summit.jpg" {
		t.Errorf("image = %q", article.ImageURL)
	}
	want := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	if !article.PublishedAt.Equal(want) {
		t.Errorf("published = %v", article.PublishedAt)
	}
}

func TestScannerFetchFiltersByTopic(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer server.Close()

	sc := NewScanner(server.Client())
	articles, err := sc.Fetch(context.Background(), source.Request{
		Topic: "climate",
		Limit: 10,
		Options: map[string]string{
			"url":         server.URL,
			"source_name": "Example Wire",
		},
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("articles = %d, want 2 climate entries", len(articles))
	}
	for _, a := range articles {
		if a.Source != "Example Wire" {
			t.Errorf("source = %q", a.Source)
		}
		if !strings.Contains(strings.ToLower(a.Title), "climate") {
			t.Errorf("off-topic article kept: %q", a.Title)
		}
	}
}

func TestScannerFetchHonorsLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer server.Close()

	sc := NewScanner(server.Client())
	articles, err := sc.Fetch(context.Background(), source.Request{
		Topic:   "climate",
		Limit:   1,
		Options: map[string]string{"url": server.URL},
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("articles = %d, want limit of 1", len(articles))
	}
}

func TestScannerFetchRequiresURL(t *testing.T) {
	t.Parallel()

	sc := NewScanner(nil)
	if _, err := sc.Fetch(context.Background(), source.Request{Topic: "x"}); err == nil {
		t.Fatal("expected error without a url option")
	}
}

package domain

import "time"

// Article is a core entity describing metadata fetched from news providers.
// It is immutable after fetch except for the Score annotation assigned
// during selection.
type Article struct {
	Title       string
	Description string
	Source      string
	Author      string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	Score       float64
}

// HasImage reports whether the article carries an attachable image.
func (a Article) HasImage() bool {
	return a.ImageURL != ""
}

// PostStatus enumerates terminal outcomes of publishing one article.
type PostStatus string

const (
	StatusPublishedWithImage PostStatus = "published_with_image"
	StatusPublishedTextOnly  PostStatus = "published_text_only"
	StatusFailed             PostStatus = "failed"
	StatusPreview            PostStatus = "preview"
)

// PostResult records the outcome of publishing a single selected article.
// Exactly one result exists per selected article, in selection order.
type PostResult struct {
	Index   int
	Status  PostStatus
	Text    string
	PostID  string
	PostURL string
	Error   string
}

// Published reports whether the item actually reached the platform.
func (r PostResult) Published() bool {
	return r.Status == StatusPublishedWithImage || r.Status == StatusPublishedTextOnly
}

// RunRecord is the audit snapshot of one completed pipeline run,
// persisted when a repository is configured.
type RunRecord struct {
	ID         string
	Topic      string
	AutoPosted bool
	Results    []PostResult
	FinishedAt time.Time
}

package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

// PublishStage iterates the selected article / post pairs in order and
// applies the per-item fallback policy: attempt image attach, fall back
// to text-only, record a failure and continue. One item's total failure
// never prevents subsequent items; the stage always produces exactly
// one outcome record per selected article, in selection order.
//
// With AutoPublish disabled the stage performs a preview: the same
// record shape per item, zero network calls.
type PublishStage struct {
	Publisher ports.Publisher
	Logger    *slog.Logger
}

func (s *PublishStage) Name() string { return "publish" }

func (s *PublishStage) Run(ctx context.Context, state *State) error {
	results := make([]domain.PostResult, 0, len(state.TopArticles))

	if !state.AutoPublish {
		for i, article := range state.TopArticles {
			text := fullPostText(state.RewrittenPosts[i], article.URL)
			s.info("preview post", "index", i, "text", text)
			results = append(results, domain.PostResult{
				Index:  i,
				Status: domain.StatusPreview,
				Text:   text,
			})
		}
		state.PublishResults = results
		return nil
	}

	if s.Publisher == nil {
		return fmt.Errorf("publisher is not configured")
	}

	for i, article := range state.TopArticles {
		result := s.publishItem(ctx, i, article, state.RewrittenPosts[i])
		results = append(results, result)
	}

	state.PublishResults = results
	s.info("publish finished", "total", len(results), "published", countPublished(results))
	return nil
}

// publishItem runs the per-item state machine:
// AttemptImage -> AttemptTextOnly -> Failed, or Published.
func (s *PublishStage) publishItem(ctx context.Context, index int, article domain.Article, post string) domain.PostResult {
	text := fullPostText(post, article.URL)

	mediaID := ""
	if article.HasImage() {
		id, err := s.Publisher.UploadMedia(ctx, article.ImageURL)
		if err != nil {
			s.warn("media upload failed, falling back to text-only", "index", index, "error", err)
		} else {
			mediaID = id
		}
	}

	if mediaID != "" {
		postID, err := s.Publisher.PublishPost(ctx, text, mediaID)
		if err == nil {
			s.info("posted with image", "index", index, "post_id", postID)
			return postedResult(index, domain.StatusPublishedWithImage, text, postID)
		}
		s.warn("posting with media failed, retrying text-only", "index", index, "error", err)
	}

	postID, err := s.Publisher.PublishPost(ctx, text, "")
	if err != nil {
		s.warn("posting failed", "index", index, "error", err)
		return domain.PostResult{
			Index:  index,
			Status: domain.StatusFailed,
			Text:   text,
			Error:  err.Error(),
		}
	}

	s.info("posted text-only", "index", index, "post_id", postID)
	return postedResult(index, domain.StatusPublishedTextOnly, text, postID)
}

func postedResult(index int, status domain.PostStatus, text, postID string) domain.PostResult {
	return domain.PostResult{
		Index:   index,
		Status:  status,
		Text:    text,
		PostID:  postID,
		PostURL: "https://x.com/user/status/" + postID,
	}
}

// fullPostText appends the article link on its own line. The link is
// intentionally outside the sanitized 250-rune body.
func fullPostText(post, url string) string {
	if url == "" {
		return post
	}
	return post + "\n\n" + url
}

func countPublished(results []domain.PostResult) int {
	n := 0
	for _, r := range results {
		if r.Published() {
			n++
		}
	}
	return n
}

func (s *PublishStage) info(msg string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Info(msg, args...)
	}
}

func (s *PublishStage) warn(msg string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(msg, args...)
	}
}

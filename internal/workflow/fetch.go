package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"NewsPoster/internal/ports"
)

// defaultFetchLimit caps how many raw articles one run pulls upstream.
const defaultFetchLimit = 20

// FetchStage populates State.Articles from the news source. A source
// failure is fatal to the run: with nothing to score, the pipeline
// cannot proceed.
type FetchStage struct {
	Source ports.NewsSource
	Limit  int
	Logger *slog.Logger
}

func (s *FetchStage) Name() string { return "fetch" }

func (s *FetchStage) Run(ctx context.Context, state *State) error {
	if s.Source == nil {
		return fmt.Errorf("news source is not configured")
	}

	limit := s.Limit
	if limit <= 0 || limit > defaultFetchLimit {
		limit = defaultFetchLimit
	}

	articles, err := s.Source.FetchTopic(ctx, state.Topic, limit)
	if err != nil {
		return fmt.Errorf("fetch articles for %q: %w", state.Topic, err)
	}

	state.Articles = articles
	if s.Logger != nil {
		s.Logger.Info("articles fetched", "topic", state.Topic, "count", len(articles))
	}
	return nil
}

package workflow

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"NewsPoster/internal/scoring"
)

// SelectStage scores every fetched article and keeps the top
// min(PostCount, available) by score. The sort is stable, so equal
// scores retain fetch order, and the original Articles slice is left
// untouched. An empty fetch result is a valid empty run, not an error.
type SelectStage struct {
	// Now overrides the clock for deterministic scoring in tests.
	Now    func() time.Time
	Logger *slog.Logger
}

func (s *SelectStage) Name() string { return "select" }

func (s *SelectStage) Run(_ context.Context, state *State) error {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}

	ranked := append(state.Articles[:0:0], state.Articles...)
	for i := range ranked {
		ranked[i].Score = scoring.Score(ranked[i], now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	k := state.PostCount
	if len(ranked) < k {
		k = len(ranked)
	}
	state.TopArticles = ranked[:k]

	if s.Logger != nil {
		s.Logger.Info("articles selected", "requested", state.PostCount, "selected", k)
	}
	return nil
}

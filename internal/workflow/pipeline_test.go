package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"NewsPoster/internal/domain"
)

// stubSource returns a fixed article set or an error.
type stubSource struct {
	articles []domain.Article
	err      error
	topic    string
	limit    int
}

func (s *stubSource) FetchTopic(_ context.Context, topic string, limit int) ([]domain.Article, error) {
	s.topic = topic
	s.limit = limit
	return s.articles, s.err
}

// echoRewriter rewrites every article into a fixed derivation of its title.
type echoRewriter struct{}

func (echoRewriter) Rewrite(_ context.Context, article domain.Article) (string, error) {
	return "Summary of " + article.Title, nil
}

func newTestPipeline(source *stubSource, publisher *fakePublisher) *Pipeline {
	return NewPipeline(nil,
		&FetchStage{Source: source},
		&SelectStage{Now: fixedNow},
		&RewriteStage{Rewriter: echoRewriter{}},
		&PublishStage{Publisher: publisher},
	)
}

func TestPipelineFullRun(t *testing.T) {
	t.Parallel()

	source := &stubSource{articles: []domain.Article{
		{Title: "fresh", Source: "Reuters", URL: "https://n/1", PublishedAt: selectNow.Add(-time.Hour), ImageURL: "img-1"},
		{Title: "older", Source: "CNN", URL: "https://n/2", PublishedAt: selectNow.Add(-30 * time.Hour)},
		{Title: "stale", Source: "Nobody", URL: "https://n/3", PublishedAt: selectNow.Add(-500 * time.Hour)},
	}}
	publisher := &fakePublisher{}

	state, err := NewState("tech", true, 2)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}

	if err := newTestPipeline(source, publisher).Run(context.Background(), state); err != nil {
		t.Fatalf("pipeline: %v", err)
	}

	if source.topic != "tech" {
		t.Errorf("fetch topic = %q", source.topic)
	}
	if source.limit != 20 {
		t.Errorf("fetch limit = %d, want 20", source.limit)
	}
	if len(state.TopArticles) != 2 {
		t.Fatalf("top articles = %d, want 2", len(state.TopArticles))
	}
	if state.TopArticles[0].Title != "fresh" {
		t.Errorf("top article = %q", state.TopArticles[0].Title)
	}
	if len(state.RewrittenPosts) != len(state.TopArticles) {
		t.Fatalf("posts = %d, top articles = %d", len(state.RewrittenPosts), len(state.TopArticles))
	}
	if len(state.PublishResults) != len(state.TopArticles) {
		t.Fatalf("results = %d, top articles = %d", len(state.PublishResults), len(state.TopArticles))
	}
	if state.PublishResults[0].Status != domain.StatusPublishedWithImage {
		t.Errorf("first result status = %q", state.PublishResults[0].Status)
	}
}

func TestPipelineFetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	source := &stubSource{err: errors.New("news api down")}
	state, _ := NewState("tech", false, 2)

	err := newTestPipeline(source, &fakePublisher{}).Run(context.Background(), state)
	if err == nil {
		t.Fatal("expected fatal error from fetch stage")
	}

	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("error is not *StageError: %T", err)
	}
	if se.StageName() != "fetch" {
		t.Errorf("failing stage = %q", se.StageName())
	}
	if len(state.PublishResults) != 0 {
		t.Error("fatal failure must not leave partial publish results")
	}
}

func TestPipelineEmptyFetchIsValidEmptyRun(t *testing.T) {
	t.Parallel()

	source := &stubSource{}
	publisher := &fakePublisher{}
	state, _ := NewState("tech", true, 3)

	if err := newTestPipeline(source, publisher).Run(context.Background(), state); err != nil {
		t.Fatalf("empty fetch must not fail the run: %v", err)
	}

	if len(state.TopArticles) != 0 || len(state.RewrittenPosts) != 0 || len(state.PublishResults) != 0 {
		t.Fatalf("empty run left data: top=%d posts=%d results=%d",
			len(state.TopArticles), len(state.RewrittenPosts), len(state.PublishResults))
	}
	if publisher.uploadCalls != 0 || publisher.publishCalls != 0 {
		t.Error("empty run made publish calls")
	}
}

func TestStageErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("root cause")
	se := &StageError{Stage: "fetch", Err: inner}

	if se.Error() != "fetch: root cause" {
		t.Errorf("Error() = %q", se.Error())
	}
	if !errors.Is(se, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}

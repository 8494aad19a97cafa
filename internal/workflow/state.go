package workflow

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"NewsPoster/internal/domain"
)

// MaxPostCount bounds how many posts one run may publish.
const MaxPostCount = 5

// State is the single mutable record threaded through all pipeline
// stages. Topic, AutoPublish and PostCount are read-only inputs; each
// stage writes exactly its own output field. One State instance equals
// one pipeline execution and is never shared across runs.
type State struct {
	RunID       string
	Topic       string
	AutoPublish bool
	PostCount   int

	Articles       []domain.Article
	TopArticles    []domain.Article
	RewrittenPosts []string
	PublishResults []domain.PostResult
}

// NewState validates the run inputs and builds a fresh workflow state.
func NewState(topic string, autoPublish bool, postCount int) (*State, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	if postCount < 1 || postCount > MaxPostCount {
		return nil, fmt.Errorf("post count %d outside allowed range 1..%d", postCount, MaxPostCount)
	}

	return &State{
		RunID:       uuid.New().String(),
		Topic:       topic,
		AutoPublish: autoPublish,
		PostCount:   postCount,
	}, nil
}

package ports

import (
	"context"
	"time"

	"NewsPoster/internal/domain"
)

// NewsSource pulls recent articles for a topic from an upstream provider.
type NewsSource interface {
	FetchTopic(ctx context.Context, topic string, limit int) ([]domain.Article, error)
}

// Rewriter turns an article into a short social-media post body.
type Rewriter interface {
	Rewrite(ctx context.Context, article domain.Article) (string, error)
}

// Publisher posts to the social platform. UploadMedia returns a media
// handle usable in a subsequent PublishPost call; PublishPost accepts
// an empty mediaID for text-only posts and returns the platform post id.
type Publisher interface {
	UploadMedia(ctx context.Context, imageURL string) (string, error)
	PublishPost(ctx context.Context, text, mediaID string) (string, error)
}

// RunRepository persists finished runs for audit and history.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.RunRecord) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

package source

import (
	"context"
	"fmt"
	"log/slog"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/ports"
)

// RegistrySource implements ports.NewsSource by resolving the
// configured provider strategy from the registry.
type RegistrySource struct {
	registry *Registry
	provider string
	options  map[string]string
	logger   *slog.Logger
}

var _ ports.NewsSource = (*RegistrySource)(nil)

// NewRegistrySource wires the registry with the config-selected provider.
func NewRegistrySource(reg *Registry, provider string, options map[string]string, log *slog.Logger) *RegistrySource {
	return &RegistrySource{
		registry: reg,
		provider: provider,
		options:  options,
		logger:   log,
	}
}

// FetchTopic resolves the provider and executes the fetch.
func (s *RegistrySource) FetchTopic(ctx context.Context, topic string, limit int) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.provider)
	if err != nil {
		return nil, err
	}

	s.debug("fetch topic", "provider", s.provider, "topic", topic, "limit", limit)

	articles, err := strategy.Fetch(ctx, Request{Topic: topic, Limit: limit, Options: s.options})
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", s.provider, err)
	}

	for i := range articles {
		if articles[i].Source == "" {
			articles[i].Source = strategy.Name()
		}
	}

	s.debug("provider produced articles", "provider", s.provider, "count", len(articles))
	return articles, nil
}

func (s *RegistrySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

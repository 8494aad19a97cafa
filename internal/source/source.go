package source

import (
	"context"
	"fmt"

	"NewsPoster/internal/domain"
)

// Request carries all parameters required to execute a fetch.
type Request struct {
	Topic   string
	Limit   int
	Options map[string]string
}

// Source captures a single provider implementation (NewsAPI, web
// headline scrapers, etc.).
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.Article, error)
}

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("news source %s is not registered", name)
}

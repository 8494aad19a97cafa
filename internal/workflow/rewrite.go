package workflow

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"NewsPoster/internal/ports"
)

// maxPostRunes is the hard ceiling on a rewritten post body.
const maxPostRunes = 250

var (
	markdownLinkExpr = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	urlExpr          = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)
	markupReplacer   = strings.NewReplacer(
		"**", "", "__", "", "```", "", "`", "",
		"#", "", "*", "", "_", "", "[", "", "]", "", ">", "",
	)
)

// RewriteStage turns each selected article into a post body via the
// language-model collaborator. Whatever the collaborator returns, the
// stage guarantees the output is at most maxPostRunes runes and free of
// URLs and markup. A per-item rewrite failure substitutes a
// deterministic fallback built from the title; the stage never aborts
// and index correspondence with TopArticles is preserved exactly.
type RewriteStage struct {
	Rewriter ports.Rewriter
	Logger   *slog.Logger
}

func (s *RewriteStage) Name() string { return "rewrite" }

func (s *RewriteStage) Run(ctx context.Context, state *State) error {
	posts := make([]string, 0, len(state.TopArticles))

	for i, article := range state.TopArticles {
		body := ""
		if s.Rewriter != nil {
			raw, err := s.Rewriter.Rewrite(ctx, article)
			if err != nil {
				if s.Logger != nil {
					s.Logger.Warn("rewrite failed, using title fallback", "index", i, "title", article.Title, "error", err)
				}
			} else {
				body = SanitizePost(raw)
			}
		}
		if body == "" {
			body = fallbackPost(article.Title)
		}
		posts = append(posts, body)
	}

	state.RewrittenPosts = posts
	if s.Logger != nil {
		s.Logger.Info("posts rewritten", "count", len(posts))
	}
	return nil
}

// SanitizePost enforces the post-body invariants on collaborator
// output: markdown links collapse to their anchor text, URL-like
// substrings and markup tokens are stripped, whitespace is normalized,
// and the result is truncated to maxPostRunes runes.
func SanitizePost(raw string) string {
	text := markdownLinkExpr.ReplaceAllString(raw, "$1")
	text = urlExpr.ReplaceAllString(text, "")
	text = markupReplacer.Replace(text)
	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) > maxPostRunes {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:maxPostRunes]))
	}
	return text
}

func fallbackPost(title string) string {
	body := SanitizePost(title)
	if body == "" {
		body = "News update"
	}
	return body
}

package scoring

import (
	"time"

	"NewsPoster/internal/domain"
)

// Scoring constants. Credibility covers [0,10], recency [2,10], the
// image bonus is flat. All three add into the composite score.
const (
	defaultCredibility = 5
	staleRecency       = 2
	unknownDateRecency = 3
	imageBonus         = 2
)

// trustedSources maps known outlets to a credibility value in [0,10].
// Sources missing from the table get defaultCredibility, never an error.
var trustedSources = map[string]float64{
	"BBC News":                10,
	"Reuters":                 10,
	"Associated Press":        10,
	"The Guardian":            9,
	"The New York Times":      9,
	"The Washington Post":     9,
	"Financial Times":         9,
	"The Wall Street Journal": 9,
	"CNN":                     8,
	"Al Jazeera":              8,
	"Bloomberg":               8,
	"NPR":                     8,
	"CNBC":                    7,
}

// Score computes the composite credibility/recency/media score for an
// article at the given instant. Pure and deterministic: identical input
// always yields identical output.
func Score(article domain.Article, now time.Time) float64 {
	return Credibility(article.Source) + Recency(article.PublishedAt, now) + ImageBonus(article.ImageURL)
}

// Credibility resolves the source name against the trusted-source table.
func Credibility(source string) float64 {
	if v, ok := trustedSources[source]; ok {
		return v
	}
	return defaultCredibility
}

// Recency maps elapsed time since publication onto a bounded step
// function: 10 within 6 hours, decaying to a floor of 2 past one week.
// A zero publication time scores a neutral 3.
func Recency(publishedAt, now time.Time) float64 {
	if publishedAt.IsZero() {
		return unknownDateRecency
	}

	hours := now.Sub(publishedAt).Hours()
	switch {
	case hours <= 6:
		return 10
	case hours <= 24:
		return 8
	case hours <= 48:
		return 6
	case hours <= 168:
		return 4
	default:
		return staleRecency
	}
}

// ImageBonus awards a flat bonus to articles that ship an image.
func ImageBonus(imageURL string) float64 {
	if imageURL != "" {
		return imageBonus
	}
	return 0
}

package scoring

import (
	"testing"
	"time"

	"NewsPoster/internal/domain"
)

var scoreNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestCredibility(t *testing.T) {
	t.Parallel()

	cases := []struct {
		source string
		want   float64
	}{
		{"Reuters", 10},
		{"BBC News", 10},
		{"The Guardian", 9},
		{"CNBC", 7},
		{"Random Blog", 5},
		{"", 5},
	}

	for _, tc := range cases {
		if got := Credibility(tc.source); got != tc.want {
			t.Errorf("Credibility(%q) = %v, want %v", tc.source, got, tc.want)
		}
	}
}

func TestRecencySteps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		age  time.Duration
		want float64
	}{
		{30 * time.Minute, 10},
		{6 * time.Hour, 10},
		{12 * time.Hour, 8},
		{36 * time.Hour, 6},
		{100 * time.Hour, 4},
		{400 * time.Hour, 2},
	}

	for _, tc := range cases {
		if got := Recency(scoreNow.Add(-tc.age), scoreNow); got != tc.want {
			t.Errorf("Recency(age=%v) = %v, want %v", tc.age, got, tc.want)
		}
	}
}

func TestRecencyMonotonic(t *testing.T) {
	t.Parallel()

	prev := 11.0
	for age := time.Hour; age <= 200*time.Hour; age += time.Hour {
		got := Recency(scoreNow.Add(-age), scoreNow)
		if got > prev {
			t.Fatalf("recency increased at age %v: %v > %v", age, got, prev)
		}
		if got < 2 || got > 10 {
			t.Fatalf("recency out of [2,10] at age %v: %v", age, got)
		}
		prev = got
	}
}

func TestRecencyZeroTime(t *testing.T) {
	t.Parallel()

	if got := Recency(time.Time{}, scoreNow); got != 3 {
		t.Fatalf("Recency(zero) = %v, want 3", got)
	}
}

func TestScoreComposition(t *testing.T) {
	t.Parallel()

	article := domain.Article{
		Source:      "Reuters",
		PublishedAt: scoreNow.Add(-2 * time.Hour),
		ImageURL:    "https://img.example.org/a.jpg",
	}

	// 10 credibility + 10 recency + 2 image.
	if got := Score(article, scoreNow); got != 22 {
		t.Fatalf("Score = %v, want 22", got)
	}

	article.ImageURL = ""
	if got := Score(article, scoreNow); got != 20 {
		t.Fatalf("Score without image = %v, want 20", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	article := domain.Article{
		Source:      "CNN",
		PublishedAt: scoreNow.Add(-30 * time.Hour),
		ImageURL:    "https://img.example.org/b.jpg",
	}

	first := Score(article, scoreNow)
	second := Score(article, scoreNow)
	if first != second {
		t.Fatalf("score not deterministic: %v != %v", first, second)
	}
}

package dto

import "time"

// NewsArticle is one feed item reduced to plain text.
type NewsArticle struct {
	Title       string
	Summary     string
	Link        string
	PublishedAt time.Time
}

// EarningsSentimentResult is the JSON reply expected from the model.
type EarningsSentimentResult struct {
	Sentiment  float64 `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

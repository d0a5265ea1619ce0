package repository

import (
	"fmt"
	"strings"

	"insider-conviction/internal/scoring/dto"
)

// BuildEarningsSentimentPrompt asks for a single JSON object rating the latest earnings tone.
func BuildEarningsSentimentPrompt(ticker string, articles []dto.NewsArticle) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an equity analyst. Rate the tone of %s's most recent earnings report ", ticker))
	b.WriteString("and guidance from the coverage below.\n\n")
	b.WriteString("Reply with only a JSON object:\n")
	b.WriteString(`{"sentiment": <number from -1 (very negative) to 1 (very positive)>, "confidence": <0 to 1>, "summary": "<one sentence>"}`)
	b.WriteString("\n\nCoverage:\n")
	for i, a := range articles {
		date := "unknown date"
		if !a.PublishedAt.IsZero() {
			date = a.PublishedAt.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, date, a.Title))
		if a.Summary != "" {
			b.WriteString("   " + a.Summary + "\n")
		}
	}
	return b.String()
}

package provider

import (
	"math"
	"strings"
	"unicode"

	"insider-conviction/internal/scoring/dto"
)

// maxKeywordWeight normalizes the lexicon score into [-1,1].
const maxKeywordWeight = 3.0

var sentimentLexicon = map[string]float64{
	"bullish": 3.0, "buy": 2.5, "surge": 2.5, "rally": 2.5, "gain": 2.0,
	"beat": 2.5, "strong": 2.0, "upgrade": 2.5, "growth": 2.0, "profit": 2.0,
	"record": 2.5, "exceed": 2.5, "expansion": 1.5, "positive": 1.5,
	"outperform": 2.0, "optimism": 2.0, "upside": 1.5, "opportunity": 1.5,
	"momentum": 2.0, "strength": 1.5, "recovery": 2.0, "advance": 1.5,

	"bearish": -3.0, "sell": -2.5, "plunge": -2.5, "crash": -2.5, "decline": -2.0,
	"miss": -2.5, "weak": -2.0, "downgrade": -2.5, "loss": -2.0, "negative": -1.5,
	"underperform": -2.0, "concern": -1.5, "risk": -1.0, "challenge": -1.5,
	"warning": -2.0, "recession": -2.5, "crisis": -2.5, "uncertain": -1.5,
	"pressure": -1.5, "headwind": -2.0, "shortage": -1.5,
}

// LexiconSentiment scores headlines and summaries against a weighted keyword
// list. A word matches a keyword it starts with, so "beats" counts as "beat".
// It returns 0 when nothing matches.
func LexiconSentiment(articles []dto.NewsArticle) float64 {
	var total float64
	hits := 0
	for _, a := range articles {
		words := strings.FieldsFunc(strings.ToLower(a.Title+" "+a.Summary), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, w := range words {
			if weight, ok := matchKeyword(w); ok {
				total += weight
				hits++
			}
		}
	}
	if hits == 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, total/(float64(hits)*maxKeywordWeight)))
}

// matchKeyword prefers the longest keyword so "underperform" is not read as
// something shorter.
func matchKeyword(word string) (float64, bool) {
	best := ""
	for kw := range sentimentLexicon {
		if len(kw) > len(best) && strings.HasPrefix(word, kw) {
			best = kw
		}
	}
	if best == "" {
		return 0, false
	}
	return sentimentLexicon[best], true
}

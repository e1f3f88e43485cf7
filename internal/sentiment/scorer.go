// Package sentiment scores news text by keyword matching. Scoring is a
// pure fold over the input: deterministic, bounded, no external calls.
package sentiment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/valorlabs/valor/internal/models"
)

// maxBodyBytes limits how much of an article body contributes per item,
// so long articles don't drown out their headlines.
const maxBodyBytes = 1200

var tokenPattern = regexp.MustCompile(`[A-Za-z']+`)

// Tokenize splits text into lowercase word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Score folds the news items into a single bounded sentiment result.
// Per item: positive and negative lexicon hits over the title plus a
// capped slice of the body; items with no hits are not scored; an item
// contributes (pos-neg)/(pos+neg). The final score is the mean of item
// contributions clamped to [-1, 1]. Empty input yields exactly 0.0.
func Score(items []models.NewsItem) models.SentimentResult {
	var result models.SentimentResult
	var acc float64

	for _, item := range items {
		text := item.Title
		if item.Content != "" {
			text += " " + capBody(item.Content)
		}

		words := Tokenize(text)
		if len(words) == 0 {
			continue
		}

		positive, negative, flags := 0, 0, 0
		for _, word := range words {
			if _, ok := positiveWords[word]; ok {
				positive++
			}
			if _, ok := negativeWords[word]; ok {
				negative++
			}
			if _, ok := redFlagWords[word]; ok {
				flags++
			}
		}

		result.PositiveHits += positive
		result.NegativeHits += negative
		result.RedFlagHits += flags

		if positive+negative == 0 {
			continue
		}
		acc += float64(positive-negative) / float64(positive+negative)
		result.ItemsScored++
	}

	if result.ItemsScored == 0 {
		return result // neutral 0.0, not an error
	}

	result.Score = clamp(acc/float64(result.ItemsScored), -1.0, 1.0)
	return result
}

// capBody truncates an article body to maxBodyBytes without splitting a
// multi-byte rune at the cut.
func capBody(body string) string {
	if len(body) <= maxBodyBytes {
		return body
	}
	cut := maxBodyBytes
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package models

import "strings"

// IntentType enumerates the questions the assistant knows how to answer.
type IntentType string

const (
	IntentAnalyze IntentType = "analyze"
	IntentScores  IntentType = "scores"
	IntentMarket  IntentType = "market"
	IntentNOI     IntentType = "noi"
	IntentUnknown IntentType = "unknown"
)

// intentKeywords is checked in order; the first matching group wins.
var intentKeywords = []struct {
	intent   IntentType
	keywords []string
}{
	{IntentAnalyze, []string{"analyze", "analyse", "roi"}},
	{IntentScores, []string{"score"}},
	{IntentMarket, []string{"market", "trend"}},
	{IntentNOI, []string{"noi", "calculate"}},
}

// Intent represents a parsed chat question.
type Intent struct {
	Type IntentType
}

// ParseIntent derives an Intent from free-form chat text.
func ParseIntent(message string) Intent {
	normalized := strings.TrimSpace(strings.ToLower(message))

	if normalized == "" {
		return Intent{Type: IntentUnknown}
	}

	intent := Intent{Type: IntentUnknown}

	for _, group := range intentKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(normalized, kw) {
				intent.Type = group.intent
				return intent
			}
		}
	}

	return intent
}

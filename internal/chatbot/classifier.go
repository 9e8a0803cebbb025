package chatbot

import (
	"regexp"
	"strings"
)

// scoreThreshold is the minimum best score for an intent to be accepted;
// anything below classifies as unknown.
const scoreThreshold = 0.2

// substringBonus is added when one phrase literally contains the other.
const substringBonus = 0.3

var whitespaceRE = regexp.MustCompile(`\s+`)

func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return whitespaceRE.ReplaceAllString(text, " ")
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}

// similarity scores a trigger phrase against normalized input: Jaccard index
// of the two word sets, plus a flat bonus when one phrase is a substring of
// the other, capped at 1.0.
func similarity(pattern, input string) float64 {
	pattern = strings.ToLower(pattern)
	patternWords := wordSet(pattern)
	inputWords := wordSet(input)

	if len(patternWords) == 0 || len(inputWords) == 0 {
		return 0
	}

	intersection := 0
	for w := range patternWords {
		if _, ok := inputWords[w]; ok {
			intersection++
		}
	}
	union := len(patternWords) + len(inputWords) - intersection

	score := float64(intersection) / float64(union)

	if strings.Contains(input, pattern) || strings.Contains(pattern, input) {
		score += substringBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// classify maps input text to the tag of the best-scoring intent. Intents and
// their patterns are scanned in configuration order with a strict greater-than
// comparison, so equal best scores resolve to the first-configured intent.
func (c Config) classify(input string) (tag string, score float64) {
	input = normalize(input)

	tag = "unknown"
	for _, intent := range c.Intents {
		for _, pattern := range intent.Patterns {
			if s := similarity(pattern, input); s > score {
				score = s
				tag = intent.Tag
			}
		}
	}

	if score < scoreThreshold {
		return "unknown", score
	}
	return tag, score
}

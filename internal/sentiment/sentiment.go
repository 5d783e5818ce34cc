// Package sentiment scores free-text mood notes. It is a small
// AFINN-style lexicon scorer: each known token contributes its
// valence, a preceding negation flips the sign, and the sign of the
// total decides the label. Blank text is neutral.
package sentiment

import (
	"strings"

	"github.com/feelfree/ff/internal/models"
)

// valence carries the per-word scores. Subset of the AFINN-111 list
// trimmed to vocabulary that shows up in mood notes.
var valence = map[string]int{
	"amazing":     4,
	"awesome":     4,
	"great":       3,
	"happy":       3,
	"love":        3,
	"loved":       3,
	"joy":         3,
	"excited":     3,
	"wonderful":   4,
	"fantastic":   4,
	"good":        3,
	"better":      2,
	"calm":        2,
	"relaxed":     2,
	"grateful":    3,
	"thankful":    2,
	"hopeful":     2,
	"proud":       2,
	"fine":        1,
	"okay":        1,
	"ok":          1,
	"bad":         -3,
	"sad":         -2,
	"unhappy":     -2,
	"angry":       -3,
	"anxious":     -2,
	"anxiety":     -2,
	"worried":     -3,
	"stressed":    -2,
	"stress":      -1,
	"tired":       -2,
	"exhausted":   -2,
	"lonely":      -2,
	"alone":       -2,
	"depressed":   -2,
	"hopeless":    -2,
	"scared":      -2,
	"afraid":      -2,
	"terrible":    -3,
	"awful":       -3,
	"horrible":    -3,
	"worst":       -3,
	"hate":        -3,
	"hurt":        -2,
	"cry":         -1,
	"cried":       -2,
	"overwhelmed": -2,
	"panic":       -3,
}

// negations flip the valence of the word that follows them
var negations = map[string]bool{
	"not":    true,
	"no":     true,
	"never":  true,
	"nobody": true,
	"can't":  true,
	"cant":   true,
	"don't":  true,
	"dont":   true,
	"isn't":  true,
	"isnt":   true,
}

// Score returns the summed valence of the scored tokens in text
func Score(text string) int {
	total := 0
	negate := false
	for _, tok := range tokenize(text) {
		if negations[tok] {
			negate = true
			continue
		}
		if v, ok := valence[tok]; ok {
			if negate {
				v = -v
			}
			total += v
		}
		negate = false
	}
	return total
}

// LabelFor buckets a raw score by sign
func LabelFor(score int) models.SentimentLabel {
	switch {
	case score > 0:
		return models.SentimentPositive
	case score < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Analyze scores text and returns its label directly
func Analyze(text string) models.SentimentLabel {
	if strings.TrimSpace(text) == "" {
		return models.SentimentNeutral
	}
	return LabelFor(Score(text))
}

// LabelScore converts a label to the -1/0/+1 wire value the backend stores
func LabelScore(label models.SentimentLabel) int {
	switch label {
	case models.SentimentPositive:
		return 1
	case models.SentimentNegative:
		return -1
	default:
		return 0
	}
}

// ScoreLabel converts a stored wire value back to a display label
func ScoreLabel(score int) models.SentimentLabel {
	return LabelFor(score)
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	toks := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"()[]")
		if f != "" {
			toks = append(toks, f)
		}
	}
	return toks
}

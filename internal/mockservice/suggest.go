package mockservice

import (
	"strings"
	"unicode"

	"github.com/dohr-michael/emotai/internal/emoji"
)

type keyword struct {
	words     []string
	glyph     string
	sentiment string
}

// keywords is scanned in order; each matching row contributes its glyph once.
var keywords = []keyword{
	{words: []string{"pizza", "burger", "food", "eat", "hungry"}, glyph: "🍕", sentiment: "positive"},
	{words: []string{"love", "adore", "crush"}, glyph: "😍", sentiment: "positive"},
	{words: []string{"happy", "glad", "great", "awesome"}, glyph: "😊", sentiment: "positive"},
	{words: []string{"party", "celebrate", "birthday"}, glyph: "🎉", sentiment: "positive"},
	{words: []string{"fire", "hot", "lit"}, glyph: "🔥", sentiment: "positive"},
	{words: []string{"sad", "cry", "miss", "lonely"}, glyph: "😢", sentiment: "negative"},
	{words: []string{"angry", "mad", "hate", "furious"}, glyph: "😠", sentiment: "negative"},
	{words: []string{"tired", "sleep", "exhausted"}, glyph: "😴", sentiment: "neutral"},
}

// Suggest picks glyphs for message with a fixed keyword table.
func Suggest(message string) emoji.Suggestion {
	tokens := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		seen[t] = true
	}

	var glyphs emoji.Emojis
	score := 0
	for _, k := range keywords {
		for _, w := range k.words {
			if seen[w] {
				glyphs = append(glyphs, k.glyph)
				switch k.sentiment {
				case "positive":
					score++
				case "negative":
					score--
				}
				break
			}
		}
	}

	if len(glyphs) == 0 {
		return emoji.Suggestion{Emojis: emoji.Emojis{"🙂"}, Explanation: "neutral tone, no strong cues"}
	}

	tone := "neutral"
	switch {
	case score > 0:
		tone = "positive"
	case score < 0:
		tone = "negative"
	}
	return emoji.Suggestion{Emojis: glyphs, Explanation: tone + " tone matched from keywords"}
}

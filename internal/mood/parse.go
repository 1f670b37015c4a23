package mood

import (
	"regexp"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/text"
)

// hexColorPattern matches a 3- or 6-digit hex color token.
var hexColorPattern = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}){1,2}`)

// Parse extracts a mood from generated text: the first hex color token is
// the color, everything after it (punctuation-stripped and trimmed) is the
// description. Pure function, decoupled from the generation call so the
// contract is testable without a network.
//
// Returns false when no color token is found or the description comes out
// empty; callers treat that as "no signal this cycle".
func Parse(generated string) (Mood, bool) {
	loc := hexColorPattern.FindStringIndex(generated)
	if loc == nil {
		return Mood{}, false
	}

	description := text.StripPunctuation(generated[loc[1]:])
	if description == "" {
		return Mood{}, false
	}

	return Mood{
		Color:       generated[loc[0]:loc[1]],
		Description: description,
	}, true
}

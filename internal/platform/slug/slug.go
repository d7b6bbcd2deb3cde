package slug

import (
	"strings"
	"unicode"
)

// maxLen bounds the slug so note file names stay short on every filesystem.
const maxLen = 60

var fold = strings.NewReplacer(
	"å", "a", "ä", "a", "ö", "o", "æ", "ae", "ø", "o",
	"é", "e", "è", "e", "ü", "u", "ß", "ss",
)

// Make turns a user handle or note title into a lowercase ASCII path segment.
// Nordic and common accented letters are folded; anything else becomes a dash.
func Make(input string) string {
	s := fold.Replace(strings.ToLower(strings.TrimSpace(input)))

	var b strings.Builder
	dash := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	if out == "" {
		return "untitled"
	}
	return out
}

package engine

import "strings"

// Normalize canonicalizes text into a change-detection key: lower-case, the
// sentence punctuation set removed, whitespace runs collapsed, trimmed. Two
// drafts with the same key are validated at most once.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch r {
		case '.', ',', '!', '?', ';', ':':
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

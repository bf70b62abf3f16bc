package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/applaudhq/applaud/internal/domain"
)

// phraseBinding ties a phrase learned from coaching guidance to the criterion
// it was coaching. Kept as an ordered list so scanning is deterministic.
type phraseBinding struct {
	phrase    string
	criterion domain.Criterion
}

// matchPhrase returns the criterion of the first learned phrase present in
// the text, if any.
func matchPhrase(bindings []phraseBinding, text string) (domain.Criterion, bool) {
	lowered := strings.ToLower(text)
	for _, b := range bindings {
		if strings.Contains(lowered, strings.ToLower(b.phrase)) {
			return b.criterion, true
		}
	}
	return "", false
}

func countAlnum(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// ghostSurvivesEdit decides whether ghost text outlives one edit. Deleting
// characters or inserting an alphanumeric one dismisses it; pure
// whitespace/punctuation insertion (a trailing space before acceptance) does
// not.
func ghostSurvivesEdit(prev, cur string) bool {
	if len([]rune(cur)) < len([]rune(prev)) {
		return false
	}
	return countAlnum(cur) <= countAlnum(prev)
}

// joinGhost appends ghost text to the draft, inserting a single space only
// when neither side already provides one.
func joinGhost(text, ghost string) string {
	if text == "" || ghost == "" {
		return text + ghost
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	first, _ := utf8.DecodeRuneInString(ghost)
	if unicode.IsSpace(last) || unicode.IsSpace(first) {
		return text + ghost
	}
	return text + " " + ghost
}

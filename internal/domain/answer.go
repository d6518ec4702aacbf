package domain

import "strings"

// NormalizeAnswer trims and lowercases user input
func NormalizeAnswer(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// MatchAnswer reports whether input is accepted for the word.
//
// A meaning matches when either string contains the other, so partial answers
// ("re" for "red") and padded answers ("the red one") both pass, and an empty
// input matches any word.
func MatchAnswer(w Word, input string) bool {
	answer := NormalizeAnswer(input)
	for _, meaning := range w.Meanings() {
		if strings.Contains(meaning, answer) || strings.Contains(answer, meaning) {
			return true
		}
	}
	return false
}

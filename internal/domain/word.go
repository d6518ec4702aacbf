package domain

import (
	"strings"
	"time"
)

// Word represents an English/Turkish word pair
type Word struct {
	ID        int64     `json:"id"`
	English   string    `json:"english"`
	Turkish   string    `json:"turkish"`
	CreatedAt time.Time `json:"createdAt"`
}

// SameEnglish reports whether both words share the English side, ignoring case
func (w Word) SameEnglish(english string) bool {
	return strings.ToLower(w.English) == strings.ToLower(strings.TrimSpace(english))
}

// Meanings returns the accepted answers: comma-separated, trimmed and lowercased
func (w Word) Meanings() []string {
	parts := strings.Split(strings.ToLower(w.Turkish), ",")
	meanings := make([]string, 0, len(parts))
	for _, p := range parts {
		meanings = append(meanings, strings.TrimSpace(p))
	}
	return meanings
}

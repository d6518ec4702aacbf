package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchAnswer(t *testing.T) {
	red := Word{English: "red", Turkish: "kırmızı, red"}

	tests := []struct {
		name     string
		word     Word
		input    string
		expected bool
	}{
		{
			name:     "exact alternative",
			word:     red,
			input:    "red",
			expected: true,
		},
		{
			name:     "prefix of alternative",
			word:     red,
			input:    "re",
			expected: true,
		},
		{
			name:     "exact first meaning",
			word:     red,
			input:    "kırmızı",
			expected: true,
		},
		{
			name:     "case and whitespace ignored",
			word:     red,
			input:    " Kırmızı ",
			expected: true,
		},
		{
			name:     "latin case folding",
			word:     red,
			input:    "  RED ",
			expected: true,
		},
		{
			name:     "uppercase I folds to dotted i",
			word:     red,
			input:    "KIRMIZI",
			expected: false,
		},
		{
			name:     "input containing a meaning",
			word:     red,
			input:    "bright red color",
			expected: true,
		},
		{
			name:     "dotless i is not transliterated",
			word:     red,
			input:    "kirmizia",
			expected: false,
		},
		{
			name:     "empty input matches",
			word:     red,
			input:    "",
			expected: true,
		},
		{
			name:     "whitespace input matches",
			word:     red,
			input:    "   ",
			expected: true,
		},
		{
			name:     "unrelated answer",
			word:     Word{English: "cat", Turkish: "kedi"},
			input:    "köpek",
			expected: false,
		},
		{
			name:     "meaning stored in uppercase",
			word:     Word{English: "apple", Turkish: "ELMA"},
			input:    "elma",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchAnswer(tt.word, tt.input))
		})
	}
}

func TestWord_Meanings(t *testing.T) {
	w := Word{Turkish: " Kedi ,pisi, "}
	assert.Equal(t, []string{"kedi", "pisi", ""}, w.Meanings())
}

func TestWord_SameEnglish(t *testing.T) {
	w := Word{English: "Apple"}
	assert.True(t, w.SameEnglish("apple"))
	assert.True(t, w.SameEnglish(" APPLE "))
	assert.False(t, w.SameEnglish("apples"))
}

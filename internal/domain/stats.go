package domain

import "math"

// Stats holds running quiz totals
type Stats struct {
	TotalQuestions int `json:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers"`
	WrongAnswers   int `json:"wrongAnswers"`
}

// Accuracy returns the share of correct answers as a rounded percentage
func (s Stats) Accuracy() int {
	if s.TotalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100))
}

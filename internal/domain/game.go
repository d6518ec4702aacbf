package domain

// GameState is the quiz session state
type GameState string

const (
	GameStopped GameState = "stopped"
	GamePlaying GameState = "playing"
)

// Feedback describes the verdict for a submitted answer
type Feedback struct {
	Word    Word
	Correct bool
	Message string
}

// NewFeedback builds the verdict message shown to the user
func NewFeedback(w Word, correct bool) Feedback {
	msg := "Doğru! 🎉"
	if !correct {
		msg = "Yanlış! Doğru cevap: " + w.Turkish
	}
	return Feedback{Word: w, Correct: correct, Message: msg}
}

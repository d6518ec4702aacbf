package domain

import "errors"

var (
	// ErrEmptyField is returned when the English or Turkish side is blank
	ErrEmptyField = errors.New("english and turkish fields cannot be empty")
	// ErrDuplicateWord is returned when the English word already exists
	ErrDuplicateWord = errors.New("word already exists")
	// ErrNoWordsAvailable is returned when a quiz is started with no words
	ErrNoWordsAvailable = errors.New("no words available")
	// ErrAlreadyPlaying is returned when a quiz is started during a running one
	ErrAlreadyPlaying = errors.New("quiz already running")
	// ErrInvalidTheme is returned for theme values other than dark or light
	ErrInvalidTheme = errors.New("invalid theme")
)

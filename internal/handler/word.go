package handler

import (
	"context"
	"strings"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Ensure user exists
	if err := h.authService.EnsureUserExists(ctx, userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(middleware.GenericError)
	}

	// If not authorized, check password
	if !authorized {
		if h.authService.CheckPassword(text) {
			if err := h.authService.AuthorizeUser(ctx, userID); err != nil {
				h.logger.Error("Failed to authorize user", zap.Error(err))
				return c.Send(middleware.GenericError)
			}

			h.logger.Info("User authorized", zap.Int64("user_id", userID))
			h.ResetState(userID)
			return c.Send(msgAccessGranted, mainMenuMarkup())
		}

		return c.Send(msgWrongPassword)
	}

	trainer := h.trainers.Get(ctx, userID)

	// While a game runs every message is an answer. Answers sent during the
	// feedback pause are dropped by the engine.
	if trainer.Quiz.Playing() {
		trainer.Quiz.SubmitAnswer(ctx, c.Text())
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingTranslation:
		word, err := trainer.Words.Add(ctx, state.CurrentWord, text)
		if err != nil {
			h.logger.Info("Word rejected",
				zap.Int64("user_id", userID),
				zap.String("english", state.CurrentWord),
				zap.Error(err),
			)
			h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})
			return c.Send(errorText(err)+"\n\n"+msgAskEnglish, cancelMarkup())
		}

		h.logger.Info("Word added",
			zap.Int64("user_id", userID),
			zap.Int64("word_id", word.ID),
			zap.String("english", word.English),
		)

		// Reset to waiting for next word
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})
		return c.Send(formatWordAdded(word))

	default:
		// Idle or waiting for a word: the text is the English side
		h.SetState(userID, &domain.StateData{
			State:       domain.StateWaitingTranslation,
			CurrentWord: text,
		})
		return c.Send(msgAskTurkish, cancelMarkup())
	}
}

// handleAddWord starts the add-word flow
func (h *Handler) handleAddWord(c tele.Context) error {
	userID := c.Sender().ID
	if h.trainers.Get(context.Background(), userID).Quiz.Playing() {
		return h.reply(c, msgGameInProgress, quizMarkup())
	}

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})
	return h.reply(c, msgAskEnglish, cancelMarkup())
}

package handler

import (
	"context"
	"errors"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func quizMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnStop))
	return markup
}

// handlePlay starts a quiz. Questions, feedback and the summary arrive
// through the event renderer.
func (h *Handler) handlePlay(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID
	h.ResetState(userID)

	err := h.trainers.Get(ctx, userID).Quiz.Start(ctx)
	if errors.Is(err, domain.ErrNoWordsAvailable) {
		// The notification event already told the user
		if c.Callback() != nil {
			return c.Respond()
		}
		return nil
	}
	if errors.Is(err, domain.ErrAlreadyPlaying) {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgGameInProgress})
		}
		return c.Send(msgGameInProgress, quizMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(middleware.GenericError)
	}

	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgGameStarted})
	}
	return nil
}

// handleStop ends the running quiz
func (h *Handler) handleStop(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	if _, ok := h.trainers.Get(ctx, userID).Quiz.Stop(ctx); !ok {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgNoActiveGame})
		}
		return c.Send(msgNoActiveGame, mainMenuMarkup())
	}

	if c.Callback() != nil {
		return c.Respond()
	}
	return nil
}

// handleTheme flips between dark and light and stores the choice
func (h *Handler) handleTheme(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	theme, err := h.trainers.Get(ctx, userID).Theme.Toggle(ctx, h.systemDark)
	if err != nil {
		h.logger.Error("Failed to toggle theme", zap.Int64("user_id", userID), zap.Error(err))
		return h.reply(c, middleware.GenericError, mainMenuMarkup())
	}

	return h.reply(c, formatTheme(theme.IsDark(h.systemDark))+"\n\n"+msgMainMenu, mainMenuMarkup())
}

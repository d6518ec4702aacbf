package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallbackID extracts the numeric suffix of data like "del_123"
func parseCallbackID(data, prefix string) (int64, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// The same keyboard was pressed twice
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks not matched by a registered button,
// mostly the dynamic page and delete buttons
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Static buttons whose Unique did not come through
	switch data {
	case "word_list":
		return h.handleWordList(c)
	case "cancel":
		return h.handleCancel(c)
	case "back", "main_menu":
		return h.handleStart(c)
	}

	// Dynamic buttons. delok_ must be checked before del_.
	switch {
	case strings.HasPrefix(data, "page_"):
		page, err := strconv.Atoi(strings.TrimPrefix(data, "page_"))
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: msgInvalidPage})
		}
		return h.showWordList(c, page, "")
	case strings.HasPrefix(data, "delok_"):
		if id, ok := parseCallbackID(data, "delok_"); ok {
			return h.handleDeleteConfirmed(c, id)
		}
	case strings.HasPrefix(data, "del_"):
		if id, ok := parseCallbackID(data, "del_"); ok {
			return h.handleDeleteAsk(c, id)
		}
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleWordList shows the first page of the word list
func (h *Handler) handleWordList(c tele.Context) error {
	return h.showWordList(c, 1, "")
}

// showWordList renders one page of words with a delete button per word.
// A non-empty notice is shown above the list.
func (h *Handler) showWordList(c tele.Context, page int, notice string) error {
	userID := c.Sender().ID
	words := h.trainers.Get(context.Background(), userID).Words.All()

	markup := &tele.ReplyMarkup{}
	if len(words) == 0 {
		markup.Inline(markup.Row(btnAddWord), markup.Row(btnBack))
		text := msgNoWords
		if notice != "" {
			text = notice + "\n\n" + text
		}
		return h.reply(c, text, markup)
	}

	start, end, page, pages := paginate(len(words), page, wordsPerPage)
	text := formatWordList(words, start, page, pages)
	if notice != "" {
		text = notice + "\n\n" + text
	}

	rows := []tele.Row{}
	for _, w := range words[start:end] {
		btn := markup.Data("🗑 "+w.English, fmt.Sprintf("del_%d", w.ID))
		rows = append(rows, markup.Row(btn))
	}

	if pages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < pages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		rows = append(rows, navRow)
	}

	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.reply(c, text, markup)
}

// handleDeleteAsk asks for confirmation before deleting a word
func (h *Handler) handleDeleteAsk(c tele.Context, id int64) error {
	userID := c.Sender().ID
	word, ok := h.trainers.Get(context.Background(), userID).Words.Get(id)
	if !ok {
		return h.showWordList(c, 1, msgWordNotFound)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Evet", fmt.Sprintf("delok_%d", id)),
		markup.Data("❌ Hayır", "page_1"),
	))

	text := fmt.Sprintf("%s\n\n%s — %s", msgConfirmDeletion, word.English, word.Turkish)
	return h.reply(c, text, markup)
}

// handleDeleteConfirmed removes the word and shows the list again
func (h *Handler) handleDeleteConfirmed(c tele.Context, id int64) error {
	ctx := context.Background()
	userID := c.Sender().ID

	notice := msgWordNotFound
	if h.trainers.Get(ctx, userID).Words.Remove(ctx, id) {
		h.logger.Info("Word deleted", zap.Int64("user_id", userID), zap.Int64("word_id", id))
		notice = "✅ " + msgWordDeleted
	}
	return h.showWordList(c, 1, notice)
}

package handler

import (
	"errors"

	"wordtrainer/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Sender delivers messages to a chat. *tele.Bot satisfies it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// EventRenderer turns trainer events into chat messages
type EventRenderer struct {
	sender Sender
	logger *zap.Logger
}

// NewEventRenderer creates a renderer sending through sender
func NewEventRenderer(sender Sender, logger *zap.Logger) *EventRenderer {
	return &EventRenderer{sender: sender, logger: logger}
}

// For returns the notifier for one user's trainer
func (r *EventRenderer) For(userID int64) domain.Notifier {
	return domain.NotifierFunc(func(ev domain.Event) {
		r.render(userID, ev)
	})
}

func (r *EventRenderer) render(userID int64, ev domain.Event) {
	text, markup := renderEvent(ev)
	if text == "" {
		return
	}

	var opts []interface{}
	if markup != nil {
		opts = append(opts, markup)
	}
	if _, err := r.sender.Send(&tele.User{ID: userID}, text, opts...); err != nil {
		r.logger.Warn("Failed to send event",
			zap.Int64("user_id", userID),
			zap.String("event", string(ev.Type)),
			zap.Error(err),
		)
	}
}

// renderEvent returns the message for an event, or "" when the event has no
// message of its own. Word list and stats changes are shown as part of other
// replies.
func renderEvent(ev domain.Event) (string, *tele.ReplyMarkup) {
	switch ev.Type {
	case domain.EventQuestionShown:
		return formatQuestion(ev.Question), quizMarkup()
	case domain.EventFeedback:
		return formatFeedback(ev.Feedback) + "\n" + formatLiveStats(ev.Stats), nil
	case domain.EventSessionSummary:
		return formatSummary(ev.Stats), mainMenuMarkup()
	case domain.EventNotification:
		if errors.Is(ev.Err, domain.ErrNoWordsAvailable) {
			markup := &tele.ReplyMarkup{}
			markup.Inline(markup.Row(btnAddWord))
			return msgNoWordsForGame, markup
		}
		return errorText(ev.Err), nil
	default:
		return "", nil
	}
}

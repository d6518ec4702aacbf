package domain

// EventType identifies what changed in a trainer
type EventType string

const (
	EventWordListChanged EventType = "word_list_changed"
	EventQuestionShown   EventType = "question_shown"
	EventFeedback        EventType = "feedback"
	EventSessionSummary  EventType = "session_summary"
	EventStatsChanged    EventType = "stats_changed"
	EventNotification    EventType = "notification"
)

// Event is emitted by the trainer for the presentation layer to render.
// Only the fields relevant to Type are set.
type Event struct {
	Type      EventType
	WordCount int
	Question  string
	Feedback  Feedback
	Stats     Stats
	Err       error
}

// Notifier receives trainer events
type Notifier interface {
	Notify(ev Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ev Event)

// Notify calls f(ev)
func (f NotifierFunc) Notify(ev Event) {
	f(ev)
}

// NopNotifier discards every event
var NopNotifier Notifier = NotifierFunc(func(Event) {})

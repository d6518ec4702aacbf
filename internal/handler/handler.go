package handler

import (
	"sync"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/middleware"
	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	trainers    *service.Registry
	systemDark  bool
	logger      *zap.Logger

	// User states (in-memory state machine for the add-word flow)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	trainers *service.Registry,
	systemDark bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		authService: authService,
		trainers:    trainers,
		systemDark:  systemDark,
		logger:      logger,
		states:      make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	auth := middleware.AuthMiddleware(h.authService, h.logger)

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/add", h.handleAddWord, auth)
	h.bot.Handle("/words", h.handleWordList, auth)
	h.bot.Handle("/play", h.handlePlay, auth)
	h.bot.Handle("/stop", h.handleStop, auth)
	h.bot.Handle("/theme", h.handleTheme, auth)

	// Text messages: password, add-word flow and quiz answers
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnAddWord, h.handleAddWord, auth)
	h.bot.Handle(&btnWordList, h.handleWordList, auth)
	h.bot.Handle(&btnPlay, h.handlePlay, auth)
	h.bot.Handle(&btnStop, h.handleStop, auth)
	h.bot.Handle(&btnTheme, h.handleTheme, auth)
	h.bot.Handle(&btnCancel, h.handleCancel, auth)
	h.bot.Handle(&btnBack, h.handleStart)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback, auth)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "➕ Kelime Ekle",
	}
	btnWordList = tele.Btn{
		Unique: "word_list",
		Text:   "📚 Kelimelerim",
	}
	btnPlay = tele.Btn{
		Unique: "play",
		Text:   "▶️ Oyunu Başlat",
	}
	btnStop = tele.Btn{
		Unique: "stop",
		Text:   "⏹ Oyunu Bitir",
	}
	btnTheme = tele.Btn{
		Unique: "theme",
		Text:   "🌓 Tema",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ İptal",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Geri",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Ana Menü",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAddWord, btnWordList),
		menu.Row(btnPlay, btnStop),
		menu.Row(btnTheme),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

// reply edits the message behind a callback, or sends a new one for commands
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

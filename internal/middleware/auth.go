package middleware

import (
	"context"

	"wordtrainer/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Texts shared with the handlers
const (
	PasswordPrompt = "Merhaba! Devam etmek için şifreyi gir:"
	GenericError   = "Bir hata oluştu. Lütfen daha sonra tekrar deneyin."
)

// AuthMiddleware rejects commands and button presses from users who have not
// entered the bot password yet
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			ctx := context.Background()
			userID := c.Sender().ID

			// Ensure user exists
			if err := authService.EnsureUserExists(ctx, userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return reject(c, GenericError)
			}

			// Check authorization
			authorized, err := authService.IsAuthorized(ctx, userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reject(c, GenericError)
			}

			if !authorized {
				return reject(c, PasswordPrompt)
			}

			return next(c)
		}
	}
}

func reject(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

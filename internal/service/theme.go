package service

import (
	"context"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"

	"go.uber.org/zap"
)

// ThemeService stores the colour scheme preference under repository.KeyTheme.
// An absent record defers to the system preference.
type ThemeService struct {
	store  repository.KeyValueStore
	userID int64
	logger *zap.Logger
}

// NewThemeService creates a theme service for a user
func NewThemeService(store repository.KeyValueStore, userID int64, logger *zap.Logger) *ThemeService {
	return &ThemeService{
		store:  store,
		userID: userID,
		logger: logger.With(zap.Int64("user_id", userID)),
	}
}

// Get returns the stored theme, or domain.ThemeSystem if none is stored
func (s *ThemeService) Get(ctx context.Context) domain.Theme {
	raw, found, err := s.store.Get(ctx, s.userID, repository.KeyTheme)
	if err != nil {
		s.logger.Warn("Failed to load theme", zap.Error(err))
		return domain.ThemeSystem
	}
	if !found {
		return domain.ThemeSystem
	}

	theme, err := domain.ParseTheme(raw)
	if err != nil {
		s.logger.Warn("Ignoring unknown theme", zap.String("theme", raw))
		return domain.ThemeSystem
	}
	return theme
}

// Set stores an explicit theme; domain.ThemeSystem clears the record
func (s *ThemeService) Set(ctx context.Context, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return err
	}
	if theme == domain.ThemeSystem {
		return s.Clear(ctx)
	}
	return s.store.Set(ctx, s.userID, repository.KeyTheme, string(theme))
}

// Clear removes the stored theme
func (s *ThemeService) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.userID, repository.KeyTheme)
}

// IsDark resolves the effective theme against the system preference
func (s *ThemeService) IsDark(ctx context.Context, systemDark bool) bool {
	return s.Get(ctx).IsDark(systemDark)
}

// Toggle flips the effective theme and stores the result explicitly
func (s *ThemeService) Toggle(ctx context.Context, systemDark bool) (domain.Theme, error) {
	next := domain.ThemeDark
	if s.IsDark(ctx, systemDark) {
		next = domain.ThemeLight
	}
	if err := s.Set(ctx, next); err != nil {
		return s.Get(ctx), err
	}
	return next, nil
}

package service

import (
	"context"
	"fmt"
	"testing"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/repository/memory"
	"wordtrainer/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestThemeService_Toggle(t *testing.T) {
	tests := []struct {
		name       string
		stored     domain.Theme
		systemDark bool
		expected   domain.Theme
	}{
		{
			name:       "system light becomes dark",
			stored:     domain.ThemeSystem,
			systemDark: false,
			expected:   domain.ThemeDark,
		},
		{
			name:       "system dark becomes light",
			stored:     domain.ThemeSystem,
			systemDark: true,
			expected:   domain.ThemeLight,
		},
		{
			name:       "explicit dark becomes light",
			stored:     domain.ThemeDark,
			systemDark: true,
			expected:   domain.ThemeLight,
		},
		{
			name:       "explicit light becomes dark",
			stored:     domain.ThemeLight,
			systemDark: true,
			expected:   domain.ThemeDark,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			themes := NewThemeService(memory.NewKVStore(), 1, testutil.NewTestLogger())
			require.NoError(t, themes.Set(ctx, tt.stored))

			theme, err := themes.Toggle(ctx, tt.systemDark)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, theme)
			assert.Equal(t, tt.expected, themes.Get(ctx))
		})
	}
}

func TestThemeService_SetAndClear(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	themes := NewThemeService(store, 1, testutil.NewTestLogger())

	assert.Equal(t, domain.ThemeSystem, themes.Get(ctx))
	assert.True(t, themes.IsDark(ctx, true))

	require.NoError(t, themes.Set(ctx, domain.ThemeLight))
	assert.False(t, themes.IsDark(ctx, true))

	assert.ErrorIs(t, themes.Set(ctx, "sepia"), domain.ErrInvalidTheme)
	assert.Equal(t, domain.ThemeLight, themes.Get(ctx))

	require.NoError(t, themes.Clear(ctx))
	_, found, _ := store.Get(ctx, 1, repository.KeyTheme)
	assert.False(t, found)
	assert.Equal(t, domain.ThemeSystem, themes.Get(ctx))
}

func TestThemeService_GetIgnoresBadRecords(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		found    bool
		getError error
	}{
		{name: "unknown value", stored: "neon", found: true},
		{name: "storage error", getError: fmt.Errorf("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(testutil.MockKeyValueStore)
			store.On("Get", mock.Anything, int64(1), repository.KeyTheme).Return(tt.stored, tt.found, tt.getError)

			themes := NewThemeService(store, 1, testutil.NewTestLogger())

			assert.Equal(t, domain.ThemeSystem, themes.Get(context.Background()))
			store.AssertExpectations(t)
		})
	}
}

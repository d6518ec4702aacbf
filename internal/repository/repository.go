package repository

import "context"

// Record keys stored per user
const (
	KeyWords = "englishWords"
	KeyStats = "gameStats"
	KeyTheme = "theme"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	AuthorizeUser(ctx context.Context, userID int64) error
	EnsureUserExists(ctx context.Context, userID int64) error
}

// KeyValueStore persists serialized records per user.
// Get reports found=false for a missing key instead of an error.
type KeyValueStore interface {
	Get(ctx context.Context, userID int64, key string) (value string, found bool, err error)
	Set(ctx context.Context, userID int64, key, value string) error
	Delete(ctx context.Context, userID int64, key string) error
}

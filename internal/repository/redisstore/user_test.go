package redisstore

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestUserRepo_IsAuthorized(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectSIsMember("wordtrainer:users:authorized", "123").SetVal(true)
	mock.ExpectSIsMember("wordtrainer:users:authorized", "456").SetVal(false)

	repo := NewUserRepo(db)

	authorized, err := repo.IsAuthorized(context.Background(), 123)
	assert.NoError(t, err)
	assert.True(t, authorized)

	authorized, err = repo.IsAuthorized(context.Background(), 456)
	assert.NoError(t, err)
	assert.False(t, authorized)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_AuthorizeUser(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectSAdd("wordtrainer:users:authorized", "123").SetVal(1)

	repo := NewUserRepo(db)

	assert.NoError(t, repo.AuthorizeUser(context.Background(), 123))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_EnsureUserExists(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectSAdd("wordtrainer:users", "123").SetVal(0)

	repo := NewUserRepo(db)

	assert.NoError(t, repo.EnsureUserExists(context.Background(), 123))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package redisstore

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	usersKey      = keyPrefix + ":users"
	authorizedKey = keyPrefix + ":users:authorized"
)

// UserRepo implements repository.UserRepository with two Redis sets
type UserRepo struct {
	rdb redis.Cmdable
}

// NewUserRepo creates a new Redis user repository
func NewUserRepo(rdb redis.Cmdable) *UserRepo {
	return &UserRepo{rdb: rdb}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	return r.rdb.SIsMember(ctx, authorizedKey, member(userID)).Result()
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(ctx context.Context, userID int64) error {
	return r.rdb.SAdd(ctx, authorizedKey, member(userID)).Err()
}

// EnsureUserExists records the user
func (r *UserRepo) EnsureUserExists(ctx context.Context, userID int64) error {
	return r.rdb.SAdd(ctx, usersKey, member(userID)).Err()
}

func member(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

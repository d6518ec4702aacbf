package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KVRepo implements repository.KeyValueStore with one Redis string per record
type KVRepo struct {
	rdb redis.Cmdable
}

// NewKVRepo creates a new Redis key-value repository
func NewKVRepo(rdb redis.Cmdable) *KVRepo {
	return &KVRepo{rdb: rdb}
}

// Get returns the stored value for the user's key
func (r *KVRepo) Get(ctx context.Context, userID int64, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, recordKey(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the value without expiration
func (r *KVRepo) Set(ctx context.Context, userID int64, key, value string) error {
	if err := r.rdb.Set(ctx, recordKey(userID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the user's key
func (r *KVRepo) Delete(ctx context.Context, userID int64, key string) error {
	if err := r.rdb.Del(ctx, recordKey(userID, key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Store.Load for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Identity is what a session remembers about the signed-in user
type Identity struct {
	UserID    uint
	Username  string
	LoginTime time.Time
}

// Store persists session records outside the process
type Store interface {
	Save(ctx context.Context, id string, identity Identity, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Identity, error)
	Delete(ctx context.Context, id string) error
}

const keyPrefix = "session:"

// RedisStore keeps each session as a hash under session:<id> with a TTL
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, id string, identity Identity, ttl time.Duration) error {
	key := keyPrefix + id
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"user_id", strconv.FormatUint(uint64(identity.UserID), 10),
			"username", identity.Username,
			"login_time", strconv.FormatInt(identity.LoginTime.Unix(), 10),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Identity, error) {
	fields, err := s.rdb.HGetAll(ctx, keyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	userID, err := strconv.ParseUint(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	loginUnix, err := strconv.ParseInt(fields["login_time"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}

	return &Identity{
		UserID:    uint(userID),
		Username:  fields["username"],
		LoginTime: time.Unix(loginUnix, 0),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

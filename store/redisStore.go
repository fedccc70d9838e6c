package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"guildPointsBot/models"
)

const feedbackKey = "feedback"

// RedisStore keeps each document as one JSON string value.
type RedisStore struct {
	client *redis.Client
}

func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return rdb, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func docKey(guildID, name string) string {
	return fmt.Sprintf("guild:%s:doc:%s", guildID, name)
}

func (r *RedisStore) Get(ctx context.Context, guildID, name string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, docKey(guildID, name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeErr("get", guildID, name, err)
	}
	return data, true, nil
}

func (r *RedisStore) Set(ctx context.Context, guildID, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return storeErr("set", guildID, name, err)
	}
	if err := r.client.Set(ctx, docKey(guildID, name), payload, 0).Err(); err != nil {
		return storeErr("set", guildID, name, err)
	}
	return nil
}

func (r *RedisStore) AppendFeedback(ctx context.Context, fb models.Feedback) error {
	payload, err := json.Marshal(fb)
	if err != nil {
		return storeErr("append", fb.GuildID, feedbackKey, err)
	}
	if err := r.client.RPush(ctx, feedbackKey, payload).Err(); err != nil {
		return storeErr("append", fb.GuildID, feedbackKey, err)
	}
	return nil
}

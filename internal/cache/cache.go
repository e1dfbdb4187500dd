// Package cache keeps per-game move histories in Redis so a replay can be
// reconstructed after the process restarts. Like the store, it is optional.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"patience/internal/game"
)

// historyTTL bounds how long an inactive game's trail is kept.
const historyTTL = 72 * time.Hour

// Cache wraps a Redis client. A nil *Cache discards everything it is given.
type Cache struct {
	client *redis.Client
}

// Open connects to Redis at addr and verifies the connection.
func Open(ctx context.Context, url string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return &Cache{client: client}, nil
}

// Close shuts down the client. Safe on a nil receiver.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func historyKey(gameID uuid.UUID) string {
	return "patience:moves:" + gameID.String()
}

// RecordMove appends one move to the game's history list. Safe on a nil
// receiver.
func (c *Cache) RecordMove(ctx context.Context, rec game.MoveRecord) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: marshal move: %w", err)
	}
	key := historyKey(rec.GameID)
	pipe := c.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache: record move: %w", err)
	}
	return nil
}

// History returns the recorded moves for a game in order. Safe on a nil
// receiver, which reports an empty history.
func (c *Cache) History(ctx context.Context, gameID uuid.UUID) ([]game.MoveRecord, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.client.LRange(ctx, historyKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: read history: %w", err)
	}
	records := make([]game.MoveRecord, 0, len(raw))
	for _, item := range raw {
		var rec game.MoveRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("cache: decode history entry: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Drop removes a game's history, typically after its result is persisted.
// Safe on a nil receiver.
func (c *Cache) Drop(ctx context.Context, gameID uuid.UUID) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, historyKey(gameID)).Err(); err != nil {
		return fmt.Errorf("cache: drop history: %w", err)
	}
	return nil
}

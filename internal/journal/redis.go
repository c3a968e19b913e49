package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/park285/glinski-chess/internal/config"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/redis/go-redis/v9"
)

// RedisJournal appends entries to a capped list and publishes each one on a
// channel for live consumers.
type RedisJournal struct {
	rdb     *redis.Client
	listKey string
	channel string
	maxLen  int64
}

func NewRedisJournal(redisURL string, cfg config.JournalConfig) (*RedisJournal, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for redis journal")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisJournalWithClient(rdb, cfg), nil
}

func NewRedisJournalWithClient(rdb *redis.Client, cfg config.JournalConfig) *RedisJournal {
	return &RedisJournal{rdb: rdb, listKey: cfg.ListKey, channel: cfg.Channel, maxLen: cfg.MaxLen}
}

func (j *RedisJournal) Record(ctx context.Context, rec match.MoveRecord) error {
	if j == nil || j.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(NewEntry(rec))
	if err != nil {
		return err
	}
	pipe := j.rdb.TxPipeline()
	pipe.RPush(ctx, j.listKey, raw)
	if j.maxLen > 0 {
		pipe.LTrim(ctx, j.listKey, -j.maxLen, -1)
	}
	if j.channel != "" {
		pipe.Publish(ctx, j.channel, raw)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis journal: %w", err)
	}
	return nil
}

func (j *RedisJournal) Close() error {
	if j == nil || j.rdb == nil {
		return nil
	}
	return j.rdb.Close()
}

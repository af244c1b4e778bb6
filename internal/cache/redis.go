package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/redis/rueidis"

	"github.com/esenthil2018/whisper-assistant/internal/contextutil"
)

const keyPrefix = "whisper:query:"

// ResponseCache caches final query responses in Redis, keyed by the exact
// query string. Cache failures are logged and degrade to a miss or a no-op so
// that cache availability never changes pipeline output.
type ResponseCache struct {
	client rueidis.Client
	ttl    time.Duration
}

// New creates a response cache against the given Redis address.
func New(addr string, ttl time.Duration) (*ResponseCache, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, err
	}
	return &ResponseCache{client: client, ttl: ttl}, nil
}

// Get returns the cached payload for a query, or ok == false on miss or error.
func (c *ResponseCache) Get(ctx context.Context, query string) ([]byte, bool) {
	logger := contextutil.LoggerFromContext(ctx)

	cmd := c.client.B().Get().Key(Key(query)).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			logger.WarnContext(ctx, "failed to read response cache", "error", err)
		}
		return nil, false
	}
	return data, true
}

// Store caches the payload for a query with the configured TTL.
func (c *ResponseCache) Store(ctx context.Context, query string, payload []byte) {
	logger := contextutil.LoggerFromContext(ctx)

	cmd := c.client.B().Set().Key(Key(query)).Value(string(payload)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		logger.WarnContext(ctx, "failed to write response cache", "error", err)
	}
}

// Flush removes every cached response. Called after a re-index so that
// answers are rebuilt from the fresh content.
func (c *ResponseCache) Flush(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)

	var cursor uint64
	for {
		cmd := c.client.B().Scan().Cursor(cursor).Match(keyPrefix + "*").Count(100).Build()
		entry, err := c.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			logger.WarnContext(ctx, "failed to flush response cache", "error", err)
			return
		}
		if len(entry.Elements) > 0 {
			del := c.client.B().Del().Key(entry.Elements...).Build()
			if err := c.client.Do(ctx, del).Error(); err != nil {
				logger.WarnContext(ctx, "failed to flush response cache", "error", err)
				return
			}
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return
		}
	}
}

// Close shuts down the underlying client.
func (c *ResponseCache) Close() {
	c.client.Close()
}

// Key derives the cache key for a query string.
func Key(query string) string {
	sum := md5.Sum([]byte(query))
	return keyPrefix + hex.EncodeToString(sum[:])
}

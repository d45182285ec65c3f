package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"inkwell/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on a hit the cached JSON is
// decoded into dest; on a miss fetch is invoked to fill dest and the result
// is stored best-effort with the given TTL. A nil client or any Redis error
// falls through to fetch.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	prefix := keyPrefix(key)

	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(raw), dest); jsonErr == nil {
				observability.CacheHits.WithLabelValues(prefix, "hit").Inc()
				return nil
			}
			// Corrupt entry; drop it and fall through to fetch.
			client.Del(ctx, key)
		} else if err != redis.Nil {
			observability.RedisErrors.WithLabelValues("get").Inc()
		}
	}

	observability.CacheHits.WithLabelValues(prefix, "miss").Inc()
	if err := fetch(); err != nil {
		return err
	}

	if client != nil {
		if raw, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}
	return nil
}

// keyPrefix reduces a key like "user:7:followers:count" to a low-cardinality
// metric label.
func keyPrefix(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return key
	}
	if len(parts) >= 3 {
		return parts[0] + ":" + parts[len(parts)-2] + ":" + parts[len(parts)-1]
	}
	return parts[0]
}

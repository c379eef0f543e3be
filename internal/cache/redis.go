package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores entries as JSON envelopes. The Redis expiry is only
// housekeeping; Store still checks RecordedAt against its own TTL table.
type RedisBackend struct {
	Client *redis.Client
	Prefix string
}

func NewRedisBackend(opt *redis.Options, prefix string) *RedisBackend {
	return &RedisBackend{Client: redis.NewClient(opt), Prefix: prefix}
}

func (b *RedisBackend) Load(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := b.Client.Get(ctx, b.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	e, err := decodeEnvelope(raw)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, e Entry, ttl time.Duration) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return b.Client.Set(ctx, b.Prefix+e.Key, raw, ttl).Err()
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.Client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error {
	return b.Client.Close()
}

func decodeEnvelope(raw []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, err
	}
	if e.Key == "" {
		return Entry{}, errors.New("cache envelope missing key")
	}
	return e, nil
}

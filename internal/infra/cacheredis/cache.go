package cacheredis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/usecase"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "veridoc:proof:"

// Cache stores integrity-checked proofs in redis, JSON-encoded under a
// prefixed proof-hash key. Entries always carry a TTL; proofs are
// immutable so expiry is the only invalidation.
type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Cache, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: client}, nil
}

func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.StoredProof, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var proof domain.StoredProof
	if err := json.Unmarshal(raw, &proof); err != nil {
		// A corrupt entry is treated as a miss; the caller will recheck
		// against the durable store.
		return nil, false, nil
	}
	return &proof, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, value domain.StoredProof, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

var _ usecase.ProofCache = (*Cache)(nil)

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shelfmark/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// BookCache is an optional read-through cache for catalog book lookups. The
// catalog is shared and append-mostly, so detail fetches are the one hot read
// path worth caching. The database stays authoritative; every catalog write
// invalidates the key.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache connects to Redis and verifies the connection. An empty addr
// returns a nil cache; all methods are nil-safe no-ops in that case.
func NewBookCache(addr, password string, ttl time.Duration) (*BookCache, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &BookCache{client: rdb, ttl: ttl}, nil
}

func bookKey(id string) string {
	return fmt.Sprintf("book:%s", id)
}

// Get returns the cached book, or nil on miss.
func (c *BookCache) Get(ctx context.Context, id string) (*models.Book, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var book models.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		// stale or corrupt entry, drop it
		c.client.Del(ctx, bookKey(id))
		return nil, nil
	}
	return &book, nil
}

// Set stores the book under its id with the configured TTL.
func (c *BookCache) Set(ctx context.Context, book *models.Book) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookKey(book.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry for a book id.
func (c *BookCache) Invalidate(ctx context.Context, id string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, bookKey(id)).Err()
}

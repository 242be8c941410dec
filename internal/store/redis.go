package store

import (
	"context"
	"encoding/json"
	"errors"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const redisStateKey = "gamecoins:state"

// RedisGateway stores the document JSON-encoded under a single key. Suited
// to the single-writer deployment; cross-process races are handled by the
// Postgres gateway instead.
type RedisGateway struct {
	client *redis.Client
}

// NewRedisGateway connects to Redis and verifies the connection.
func NewRedisGateway(ctx context.Context, addr, password string, db int) (*RedisGateway, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisGateway{client: client}, nil
}

func (g *RedisGateway) Load(ctx context.Context) (*domain.Document, error) {
	data, err := g.client.Get(ctx, redisStateKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewDocument(), nil
		}
		return nil, err
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		logger.Error("stored state unreadable, starting from default document", "error", err)
		return domain.NewDocument(), nil
	}
	return doc, nil
}

func (g *RedisGateway) Save(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return g.client.Set(ctx, redisStateKey, data, 0).Err()
}

// Close releases the underlying client.
func (g *RedisGateway) Close() error {
	return g.client.Close()
}

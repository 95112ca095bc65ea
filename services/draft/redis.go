package draft

import (
	"context"
	"fmt"
	"time"

	"estatedesk/models"
	"estatedesk/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore persists wizard sessions as JSON snapshots in Redis, one key per
// session, refreshed with a TTL on every save.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStore creates a RedisStore with the given client and snapshot TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) Save(ctx context.Context, key string, sess *models.WizardSession) error {
	data, err := encodeSession(sess)
	if err != nil {
		return fmt.Errorf("draft: failed to marshal session: %w", err)
	}
	if err := s.Client.Set(ctx, key, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("draft: failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (*models.WizardSession, error) {
	data, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// Draft persistence is best-effort: an unavailable store means the
		// wizard starts empty rather than failing the request.
		utils.GetLogger().Warn("Draft store unavailable, starting empty",
			zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return decodeSession(key, data), nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("draft: failed to clear session: %w", err)
	}
	return nil
}

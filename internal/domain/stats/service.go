package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheKey = "stats:snapshot"

// Service serves aggregate stats with a short Redis cache in front of the
// counting queries. A nil Redis client disables caching.
type Service struct {
	repo     Repository
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewService creates new stats service
func NewService(repo Repository, redisClient *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

// Snapshot returns the aggregate stats, serving from cache when fresh.
// Cache failures fall through to the database.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var snap Snapshot
			if err := json.Unmarshal([]byte(cached), &snap); err == nil {
				return &snap, nil
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Msg("stats cache read failed")
		}
	}

	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("stats cache write failed")
			}
		}
	}

	return snap, nil
}

package scheduler

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bafa2024/complaint-hub-beta/internal/config"
)

// RedisScheduler stores pending actions in a sorted set scored by their
// run time. A multi-process deployment may share one queue; ZPopMin-style
// removal keeps each action delivered at most once.
type RedisScheduler struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisScheduler builds a scheduler on top of an existing client.
func NewRedisScheduler(client *redis.Client, cfg config.SchedulerConfig, logger *zap.Logger) *RedisScheduler {
	return &RedisScheduler{client: client, key: cfg.QueueKey, logger: logger}
}

func (s *RedisScheduler) Schedule(ctx context.Context, action Action) error {
	raw, err := json.Marshal(action)
	if err != nil {
		return err
	}
	return s.client.ZAdd(ctx, s.key, redis.Z{
		Score:  float64(action.RunAt.Unix()),
		Member: string(raw),
	}).Err()
}

func (s *RedisScheduler) Due(ctx context.Context, now time.Time, limit int) ([]Action, error) {
	if limit <= 0 {
		limit = 50
	}
	members, err := s.client.ZRangeByScore(ctx, s.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, err
	}

	actions := make([]Action, 0, len(members))
	for _, member := range members {
		// Remove first so a crashed decode cannot replay forever.
		removed, err := s.client.ZRem(ctx, s.key, member).Result()
		if err != nil {
			return actions, err
		}
		if removed == 0 {
			// Another worker claimed it.
			continue
		}
		var action Action
		if err := json.Unmarshal([]byte(member), &action); err != nil {
			s.logger.Warn("dropping malformed scheduled action", zap.Error(err))
			continue
		}
		actions = append(actions, action)
	}
	return actions, nil
}

package scoreboard

import (
	"context"
	"time"

	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	boardKeyPrefix = "algoviz:board:"

	// maxBoardSize caps how many runs a board retains; the worst
	// entries are trimmed once the cap is exceeded.
	maxBoardSize = 100
)

// RedisScoreboard keeps per-strategy run scores in Redis sorted sets
// with TTL support. Lower scores rank first.
type RedisScoreboard struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisScoreboard initializes a RedisScoreboard with the provided Redis client and TTL.
func NewRedisScoreboard(client *redis.Client, ttlSeconds int) (i.Scoreboard, error) {
	board := &RedisScoreboard{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Record adds a member to the board with the given score, sets expiration
// if necessary, and trims the board back down to its cap.
func (rs *RedisScoreboard) Record(ctx context.Context, board string, score float64, member string) error {
	key := boardKeyPrefix + board
	_, err := rs.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rs.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 {
		_ = rs.client.Expire(ctx, key, rs.ttl).Err()
	}

	if rs.client.ZCard(ctx, key).Val() > maxBoardSize {
		mutex := rs.locker.NewMutex(key + ":trim_lock")
		if err := mutex.Lock(); err != nil {
			return err
		}
		defer func() {
			_, _ = mutex.Unlock()
		}()

		_ = rs.client.ZRemRangeByRank(ctx, key, maxBoardSize, -1).Err()
	}

	return nil
}

// Top retrieves up to `amount` members with the lowest scores.
func (rs *RedisScoreboard) Top(ctx context.Context, board string, amount int64) ([]i.RunScore, error) {
	if amount <= 0 {
		return nil, nil
	}

	key := boardKeyPrefix + board
	entries, err := rs.client.ZRangeWithScores(ctx, key, 0, amount-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]i.RunScore, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, i.RunScore{Member: member, Score: e.Score})
	}
	return scores, nil
}

// Count returns the number of members on the board.
func (rs *RedisScoreboard) Count(ctx context.Context, board string) int64 {
	return rs.client.ZCard(ctx, boardKeyPrefix+board).Val()
}

package leaderboard

import (
	"context"
	"time"

	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/pkg/xcontext"
	"github.com/shareboost/backend/pkg/xredis"
)

const defaultCacheTTL = time.Minute

// Cache is a disposable materialized view over the ranked user listing. It is
// a performance optimization only: every failure degrades to the live
// database computation and is never surfaced to the caller.
type Cache interface {
	Get(ctx context.Context, page, limit int) ([]model.LeaderboardEntry, bool)
	Set(ctx context.Context, page, limit int, entries []model.LeaderboardEntry)
	Invalidate(ctx context.Context)
}

type redisCache struct {
	redisClient xredis.Client
}

func NewCache(redisClient xredis.Client) *redisCache {
	return &redisCache{redisClient: redisClient}
}

func (c *redisCache) Get(ctx context.Context, page, limit int) ([]model.LeaderboardEntry, bool) {
	var entries []model.LeaderboardEntry
	err := c.redisClient.GetObj(ctx, common.RedisKeyLeaderboard(page, limit), &entries)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Leaderboard cache miss for page=%d limit=%d: %v", page, limit, err)
		return nil, false
	}

	return entries, true
}

func (c *redisCache) Set(ctx context.Context, page, limit int, entries []model.LeaderboardEntry) {
	ttl := xcontext.Configs(ctx).Leaderboard.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	err := c.redisClient.SetObj(ctx, common.RedisKeyLeaderboard(page, limit), entries, ttl)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set leaderboard cache: %v", err)
	}
}

// Invalidate drops every cached page. It is called after any event that
// changes any user's points or rank.
func (c *redisCache) Invalidate(ctx context.Context) {
	keys, err := c.redisClient.Keys(ctx, common.RedisPatternLeaderboard())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list leaderboard cache keys: %v", err)
		return
	}

	if err := c.redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot invalidate leaderboard cache: %v", err)
	}
}

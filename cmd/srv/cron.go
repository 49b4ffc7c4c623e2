package main

import (
	"github.com/shareboost/backend/internal/domain/cron"
	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()

	s.leaderboardCache = leaderboard.NewCache(s.redisClient)
	s.rankingEngine = ranking.New(s.userRepo, s.leaderboardCache)

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewRankReconcileCronJob(s.ctx, s.rankingEngine))
	cronJobManager.Start(s.ctx)

	return nil
}

package cron

import (
	"context"
	"time"

	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/pkg/xcontext"
)

const defaultReconcileInterval = 5 * time.Minute

// RankReconcileCronJob periodically replays the full rank computation so
// that any drift of the incremental per-share updates is bounded by the
// reconcile interval.
type RankReconcileCronJob struct {
	rankingEngine ranking.Engine
	interval      time.Duration
}

func NewRankReconcileCronJob(ctx context.Context, rankingEngine ranking.Engine) *RankReconcileCronJob {
	interval := xcontext.Configs(ctx).Cron.RankReconcileInterval
	if interval == 0 {
		interval = defaultReconcileInterval
	}

	return &RankReconcileCronJob{rankingEngine: rankingEngine, interval: interval}
}

func (job *RankReconcileCronJob) Do(ctx context.Context) {
	if _, err := job.rankingEngine.UpdateAllRanks(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reconcile ranks: %v", err)
	}
}

func (job *RankReconcileCronJob) RunNow() bool {
	return true
}

func (job *RankReconcileCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}

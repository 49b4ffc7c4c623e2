package repository

import (
	"context"
	"time"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/pkg/xcontext"
)

type GetListShareEventFilter struct {
	UserID   string
	Platform entity.Platform
	Offset   int
	Limit    int
}

type PlatformStat struct {
	Platform    entity.Platform
	TotalShares int64
	TotalPoints int64
}

type ShareActivityStat struct {
	TotalShares int64
	TotalPoints int64
}

type ShareEventRepository interface {
	Create(ctx context.Context, data *entity.ShareEvent) error
	GetByUserAndPlatform(ctx context.Context, userID string, platform entity.Platform) (*entity.ShareEvent, error)
	GetList(ctx context.Context, filter GetListShareEventFilter) ([]entity.ShareEvent, error)
	Count(ctx context.Context, filter GetListShareEventFilter) (int64, error)
	PlatformStats(ctx context.Context) ([]PlatformStat, error)
	StatsSince(ctx context.Context, since time.Time) (*ShareActivityStat, error)
}

type shareEventRepository struct{}

func NewShareEventRepository() *shareEventRepository {
	return &shareEventRepository{}
}

func (r *shareEventRepository) Create(ctx context.Context, data *entity.ShareEvent) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *shareEventRepository) GetByUserAndPlatform(
	ctx context.Context, userID string, platform entity.Platform,
) (*entity.ShareEvent, error) {
	var record entity.ShareEvent
	err := xcontext.DB(ctx).
		Where("user_id=? AND platform=?", userID, platform).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *shareEventRepository) GetList(
	ctx context.Context, filter GetListShareEventFilter,
) ([]entity.ShareEvent, error) {
	tx := xcontext.DB(ctx).Model(&entity.ShareEvent{}).
		Preload("User").
		Order("created_at DESC").
		Offset(filter.Offset)

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.Platform != "" {
		tx = tx.Where("platform=?", filter.Platform)
	}

	var records []entity.ShareEvent
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *shareEventRepository) Count(
	ctx context.Context, filter GetListShareEventFilter,
) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.ShareEvent{})
	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.Platform != "" {
		tx = tx.Where("platform=?", filter.Platform)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *shareEventRepository) StatsSince(ctx context.Context, since time.Time) (*ShareActivityStat, error) {
	var record ShareActivityStat
	err := xcontext.DB(ctx).Model(&entity.ShareEvent{}).
		Select("COUNT(*) AS total_shares, COALESCE(SUM(points_earned), 0) AS total_points").
		Where("created_at >= ?", since).
		Scan(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *shareEventRepository) PlatformStats(ctx context.Context) ([]PlatformStat, error) {
	var records []PlatformStat
	err := xcontext.DB(ctx).Model(&entity.ShareEvent{}).
		Select("platform, COUNT(*) AS total_shares, SUM(points_earned) AS total_points").
		Group("platform").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

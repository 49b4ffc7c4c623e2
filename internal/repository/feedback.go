package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListFeedbackFilter struct {
	Q                 string
	BiggestHurdle     entity.BiggestHurdle
	PrimaryMotivation entity.PrimaryMotivation
	TimeConsumingPart entity.TimeConsumingPart
	ProfessionalFear  entity.ProfessionalFear
	Offset            int
	Limit             int
}

type FeedbackCategoryCounts struct {
	ByBiggestHurdle     map[string]int64
	ByPrimaryMotivation map[string]int64
	ByTimeConsumingPart map[string]int64
	ByProfessionalFear  map[string]int64
}

type FeedbackRepository interface {
	Create(ctx context.Context, data *entity.Feedback) error
	GetList(ctx context.Context, filter GetListFeedbackFilter) ([]entity.Feedback, error)
	Count(ctx context.Context, filter GetListFeedbackFilter) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CategoryCounts(ctx context.Context) (*FeedbackCategoryCounts, error)
	SubmissionTimeRange(ctx context.Context) (first, latest time.Time, err error)
}

type feedbackRepository struct{}

func NewFeedbackRepository() *feedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Create(ctx context.Context, data *entity.Feedback) error {
	return xcontext.DB(ctx).Create(data).Error
}

func applyFeedbackFilter(tx *gorm.DB, filter GetListFeedbackFilter) *gorm.DB {
	if filter.Q != "" {
		pattern := "%" + filter.Q + "%"
		tx = tx.Where(
			`monetization_considerations LIKE ?
				OR professional_legacy LIKE ?
				OR platform_impact LIKE ?
				OR biggest_hurdle_other LIKE ?
				OR name LIKE ?
				OR email LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern)
	}

	if filter.BiggestHurdle != "" {
		tx = tx.Where("biggest_hurdle=?", filter.BiggestHurdle)
	}

	if filter.PrimaryMotivation != "" {
		tx = tx.Where("primary_motivation=?", filter.PrimaryMotivation)
	}

	if filter.TimeConsumingPart != "" {
		tx = tx.Where("time_consuming_part=?", filter.TimeConsumingPart)
	}

	if filter.ProfessionalFear != "" {
		tx = tx.Where("professional_fear=?", filter.ProfessionalFear)
	}

	return tx
}

func (r *feedbackRepository) GetList(
	ctx context.Context, filter GetListFeedbackFilter,
) ([]entity.Feedback, error) {
	tx := xcontext.DB(ctx).Model(&entity.Feedback{}).
		Preload("User").
		Order("created_at DESC").
		Offset(filter.Offset)

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var records []entity.Feedback
	if err := applyFeedbackFilter(tx, filter).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *feedbackRepository) Count(
	ctx context.Context, filter GetListFeedbackFilter,
) (int64, error) {
	tx := applyFeedbackFilter(xcontext.DB(ctx).Model(&entity.Feedback{}), filter)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *feedbackRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Feedback{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *feedbackRepository) CategoryCounts(ctx context.Context) (*FeedbackCategoryCounts, error) {
	counts := &FeedbackCategoryCounts{}
	for column, dest := range map[string]*map[string]int64{
		"biggest_hurdle":      &counts.ByBiggestHurdle,
		"primary_motivation":  &counts.ByPrimaryMotivation,
		"time_consuming_part": &counts.ByTimeConsumingPart,
		"professional_fear":   &counts.ByProfessionalFear,
	} {
		grouped, err := r.countByColumn(ctx, column)
		if err != nil {
			return nil, err
		}

		*dest = grouped
	}

	return counts, nil
}

func (r *feedbackRepository) countByColumn(ctx context.Context, column string) (map[string]int64, error) {
	var rows []struct {
		Value string
		Total int64
	}

	err := xcontext.DB(ctx).Model(&entity.Feedback{}).
		Select(column+" AS value, COUNT(*) AS total").
		Where(column + " != ''").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := map[string]int64{}
	for _, row := range rows {
		grouped[row.Value] = row.Total
	}

	return grouped, nil
}

// SubmissionTimeRange returns the timestamps of the oldest and newest
// submissions. Both are zero when no feedback exists yet.
func (r *feedbackRepository) SubmissionTimeRange(
	ctx context.Context,
) (first, latest time.Time, err error) {
	var oldest entity.Feedback
	err = xcontext.DB(ctx).Model(&entity.Feedback{}).
		Order("created_at ASC").Take(&oldest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, time.Time{}, nil
		}

		return time.Time{}, time.Time{}, err
	}

	var newest entity.Feedback
	err = xcontext.DB(ctx).Model(&entity.Feedback{}).
		Order("created_at DESC").Take(&newest).Error
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return oldest.CreatedAt, newest.CreatedAt, nil
}

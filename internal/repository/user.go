package repository

import (
	"context"
	"time"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListUserFilter struct {
	Q      string
	Offset int
	Limit  int
}

type RankImprovementStats struct {
	ImprovedUsers      int64
	AverageImprovement float64
	BestImprovement    int64
}

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, data entity.User) error
	UpdateRole(ctx context.Context, id string, role entity.GlobalRole) error
	GetList(ctx context.Context, filter GetListUserFilter) ([]entity.User, error)
	Count(ctx context.Context, filter GetListUserFilter) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	RankImprovementStats(ctx context.Context) (*RankImprovementStats, error)

	// Ranking support. All of these consider non-admin users only.
	CountNonAdmin(ctx context.Context) (int64, error)
	GetRankedList(ctx context.Context, offset, limit int) ([]entity.User, error)
	GetByCurrentRank(ctx context.Context, rank int64) (*entity.User, error)
	SetDefaultRank(ctx context.Context, id string, rank int64) error
	SetCurrentRank(ctx context.Context, id string, rank int64) error
	IncreasePoints(ctx context.Context, id string, points int64) error
	RankOf(ctx context.Context, id string) (int64, error)
	CountOutranking(ctx context.Context, points int64, createdAt time.Time) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("email=?", email).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data entity.User) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if len(updateMap) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role entity.GlobalRole) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
		Update("role", role).Error
}

func (r *userRepository) GetList(ctx context.Context, filter GetListUserFilter) ([]entity.User, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Order("total_points DESC, created_at ASC").
		Offset(filter.Offset)

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	if filter.Q != "" {
		tx = tx.Where("name LIKE ? OR email LIKE ?", "%"+filter.Q+"%", "%"+filter.Q+"%")
	}

	var records []entity.User
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) Count(ctx context.Context, filter GetListUserFilter) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{})
	if filter.Q != "" {
		tx = tx.Where("name LIKE ? OR email LIKE ?", "%"+filter.Q+"%", "%"+filter.Q+"%")
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// RankImprovementStats aggregates how far non-admin users have climbed from
// their registration position. Users whose rank columns were never assigned
// are left out of the aggregate.
func (r *userRepository) RankImprovementStats(ctx context.Context) (*RankImprovementStats, error) {
	var record RankImprovementStats
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Select(`
			COALESCE(SUM(CASE WHEN default_rank > current_rank THEN 1 ELSE 0 END), 0) AS improved_users,
			COALESCE(AVG(default_rank - current_rank), 0) AS average_improvement,
			COALESCE(MAX(default_rank - current_rank), 0) AS best_improvement`).
		Where("role NOT IN ?", entity.GlobalAdminRoles).
		Where("default_rank IS NOT NULL AND current_rank IS NOT NULL").
		Scan(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) CountNonAdmin(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("role NOT IN ?", entity.GlobalAdminRoles).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) GetRankedList(ctx context.Context, offset, limit int) ([]entity.User, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("role NOT IN ?", entity.GlobalAdminRoles).
		Order("total_points DESC, created_at ASC").
		Offset(offset)

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var records []entity.User
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) GetByCurrentRank(ctx context.Context, rank int64) (*entity.User, error) {
	var record entity.User
	err := xcontext.DB(ctx).
		Where("role NOT IN ?", entity.GlobalAdminRoles).
		Where("current_rank=?", rank).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) SetDefaultRank(ctx context.Context, id string, rank int64) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
		Updates(map[string]any{"default_rank": rank, "current_rank": rank}).Error
}

func (r *userRepository) SetCurrentRank(ctx context.Context, id string, rank int64) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
		Update("current_rank", rank).Error
}

func (r *userRepository) IncreasePoints(ctx context.Context, id string, points int64) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
		Updates(map[string]any{
			"total_points": gorm.Expr("total_points+?", points),
			"shares_count": gorm.Expr("shares_count+1"),
		}).Error
}

// RankOf resolves the position of a user in the total order (points
// descending, registration time ascending) with a single window-function
// query, so concurrent point updates cannot make the result drift from what
// the database itself has committed.
func (r *userRepository) RankOf(ctx context.Context, id string) (int64, error) {
	var rank int64
	err := xcontext.DB(ctx).Raw(`
		SELECT ranked.rank_no FROM (
			SELECT id, ROW_NUMBER() OVER (
				ORDER BY total_points DESC, created_at ASC
			) AS rank_no
			FROM users
			WHERE role NOT IN ? AND deleted_at IS NULL
		) ranked
		WHERE ranked.id = ?
	`, entity.GlobalAdminRoles, id).Take(&rank).Error
	if err != nil {
		return 0, err
	}

	return rank, nil
}

func (r *userRepository) CountOutranking(ctx context.Context, points int64, createdAt time.Time) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("role NOT IN ?", entity.GlobalAdminRoles).
		Where("total_points > ? OR (total_points = ? AND created_at < ?)", points, points, createdAt).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

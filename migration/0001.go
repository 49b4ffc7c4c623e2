package migration

import (
	"context"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/pkg/xcontext"
)

// migrate0001 backfills the rank columns for users created before ranks
// were persisted. Registration order decides the default rank.
func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()

	if !migrator.HasColumn(&entity.User{}, "default_rank") {
		if err := migrator.AddColumn(&entity.User{}, "default_rank"); err != nil {
			return err
		}
	}

	if !migrator.HasColumn(&entity.User{}, "current_rank") {
		if err := migrator.AddColumn(&entity.User{}, "current_rank"); err != nil {
			return err
		}
	}

	var users []entity.User
	err := xcontext.DB(ctx).
		Where("role NOT IN ?", entity.GlobalAdminRoles).
		Where("default_rank IS NULL").
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return err
	}

	var assigned int64
	err = xcontext.DB(ctx).Model(&entity.User{}).
		Where("default_rank IS NOT NULL").
		Count(&assigned).Error
	if err != nil {
		return err
	}

	for i, user := range users {
		rank := assigned + int64(i) + 1
		err := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", user.ID).
			Updates(map[string]any{"default_rank": rank, "current_rank": rank}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

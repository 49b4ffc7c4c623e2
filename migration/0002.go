package migration

import (
	"context"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/pkg/xcontext"
)

// migrate0002 introduces the feedback survey table.
func migrate0002(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()
	if migrator.HasTable(&entity.Feedback{}) {
		return nil
	}

	return migrator.CreateTable(&entity.Feedback{})
}

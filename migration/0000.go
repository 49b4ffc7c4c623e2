package migration

import (
	"context"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/pkg/xcontext"
)

// migrate0000 will create the database with the latest version.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.ShareEvent{},
		&entity.Feedback{},
	)
}

package migration

import (
	"context"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.ShareEvent{},
		&entity.Feedback{},
	)
}

package testutil

import (
	"context"
	"time"

	"github.com/shareboost/backend/config"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/pkg/authenticator"
	"github.com/shareboost/backend/pkg/logger"
	"github.com/shareboost/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Leaderboard: config.LeaderboardConfigs{
			CacheTTL: time.Minute,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/repository"
)

var fixtureBaseTime = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// The fixture users registered in the order User1, User2, User3, so their
// default ranks are 1, 2, 3. Their share history yields 1, 3, and 5 points,
// which reverses the order: the current ranks are 3, 2, 1.
var (
	SuperAdmin = entity.User{
		Base:         entity.Base{ID: "super_admin", CreatedAt: fixtureBaseTime},
		Name:         "super_admin",
		Email:        "super_admin@example.com",
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixtu",
		Role:         entity.RoleSuperAdmin,
		IsActive:     true,
	}

	User1 = entity.User{
		Base:         entity.Base{ID: "user1", CreatedAt: fixtureBaseTime.Add(time.Hour)},
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixtu",
		Role:         entity.RoleUser,
		IsActive:     true,
		TotalPoints:  1,
		SharesCount:  1,
		DefaultRank:  sql.NullInt64{Int64: 1, Valid: true},
		CurrentRank:  sql.NullInt64{Int64: 3, Valid: true},
	}

	User2 = entity.User{
		Base:         entity.Base{ID: "user2", CreatedAt: fixtureBaseTime.Add(2 * time.Hour)},
		Name:         "bob",
		Email:        "bob@example.com",
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixtu",
		Role:         entity.RoleUser,
		IsActive:     true,
		TotalPoints:  3,
		SharesCount:  1,
		DefaultRank:  sql.NullInt64{Int64: 2, Valid: true},
		CurrentRank:  sql.NullInt64{Int64: 2, Valid: true},
	}

	User3 = entity.User{
		Base:         entity.Base{ID: "user3", CreatedAt: fixtureBaseTime.Add(3 * time.Hour)},
		Name:         "carol",
		Email:        "carol@example.com",
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixtu",
		Role:         entity.RoleUser,
		IsActive:     true,
		TotalPoints:  5,
		SharesCount:  1,
		DefaultRank:  sql.NullInt64{Int64: 3, Valid: true},
		CurrentRank:  sql.NullInt64{Int64: 1, Valid: true},
	}

	Share1 = entity.ShareEvent{
		Base:         entity.Base{ID: "share1", CreatedAt: fixtureBaseTime.Add(4 * time.Hour)},
		UserID:       User1.ID,
		Platform:     entity.PlatformTwitter,
		PointsEarned: 1,
	}

	Share2 = entity.ShareEvent{
		Base:         entity.Base{ID: "share2", CreatedAt: fixtureBaseTime.Add(5 * time.Hour)},
		UserID:       User2.ID,
		Platform:     entity.PlatformFacebook,
		PointsEarned: 3,
	}

	Share3 = entity.ShareEvent{
		Base:         entity.Base{ID: "share3", CreatedAt: fixtureBaseTime.Add(6 * time.Hour)},
		UserID:       User3.ID,
		Platform:     entity.PlatformLinkedin,
		PointsEarned: 5,
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertShareEvents(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{SuperAdmin, User1, User2, User3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertShareEvents(ctx context.Context) {
	shareEventRepo := repository.NewShareEventRepository()

	for _, event := range []entity.ShareEvent{Share1, Share2, Share3} {
		event := event
		if err := shareEventRepo.Create(ctx, &event); err != nil {
			panic(err)
		}
	}
}

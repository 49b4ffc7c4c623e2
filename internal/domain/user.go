package domain

import (
	"context"
	"errors"

	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateUser(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	GetMyRank(ctx context.Context, req *model.GetMyRankRequest) (*model.GetMyRankResponse, error)
}

type userDomain struct {
	userRepo      repository.UserRepository
	rankingEngine ranking.Engine
}

func NewUserDomain(userRepo repository.UserRepository, rankingEngine ranking.Engine) *userDomain {
	return &userDomain{userRepo: userRepo, rankingEngine: rankingEngine}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: convertUser(user, true)}, nil
}

func (d *userDomain) UpdateUser(ctx context.Context, req *model.UpdateUserRequest) (*model.UpdateUserResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name must not be empty")
	}

	err := d.userRepo.UpdateByID(ctx, xcontext.RequestUserID(ctx), entity.User{Name: req.Name})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}

func (d *userDomain) GetMyRank(ctx context.Context, req *model.GetMyRankRequest) (*model.GetMyRankResponse, error) {
	rankInfo, err := d.rankingEngine.GetUserRankInfo(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetMyRankResponse{RankInfo: *rankInfo}, nil
}

func convertUser(user *entity.User, includePrivate bool) model.User {
	resp := model.User{
		ID:          user.ID,
		Name:        user.Name,
		IsActive:    user.IsActive,
		TotalPoints: user.TotalPoints,
		SharesCount: user.SharesCount,
		CreatedAt:   user.CreatedAt,
	}

	if user.DefaultRank.Valid {
		resp.DefaultRank = user.DefaultRank.Int64
	}

	if user.CurrentRank.Valid {
		resp.CurrentRank = user.CurrentRank.Int64
	}

	if includePrivate {
		resp.Email = user.Email
		resp.Role = string(user.Role)
	}

	return resp
}

package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/crypto"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.SignupResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	userRepo      repository.UserRepository
	rankingEngine ranking.Engine
}

func NewAuthDomain(userRepo repository.UserRepository, rankingEngine ranking.Engine) *authDomain {
	return &authDomain{userRepo: userRepo, rankingEngine: rankingEngine}
}

func (d *authDomain) Signup(ctx context.Context, req *model.SignupRequest) (*model.SignupResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Name and email must not be empty")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must have at least 8 characters")
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check email existence: %v", err)
		return nil, errorx.Unknown
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         entity.RoleUser,
		IsActive:     true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	// The default rank is assigned exactly once, inside the signup
	// transaction, so that the registration order is the rank order.
	if _, err := d.rankingEngine.AssignDefaultRank(ctx, user.ID); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	common.PromCounters[common.UserSignupTotal].WithLabelValues().Inc()

	user, err = d.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload created user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SignupResponse{User: convertUser(user, true)}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.PermissionDenied, "This account is deactivated")
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        convertUser(user, true),
	}, nil
}

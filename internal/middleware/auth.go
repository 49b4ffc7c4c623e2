package middleware

import (
	"context"
	"strings"

	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/router"
	"github.com/shareboost/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
	optional       bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

// WithOptional makes authentication best-effort: a missing or invalid token
// lets the request through anonymously instead of rejecting it.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			token := getAccessToken(ctx)
			if token != "" {
				info, err := xcontext.TokenEngine(ctx).Verify(token)
				if err != nil {
					xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
					if a.optional {
						return ctx, nil
					}

					return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
				}

				return xcontext.WithRequestUserID(ctx, info.ID), nil
			}
		}

		if a.optional {
			return ctx, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func getAccessToken(ctx context.Context) string {
	authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found && auth == "Bearer" {
		return token
	}

	cookie, err := xcontext.HTTPRequest(ctx).Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err == nil {
		return cookie.Value
	}

	return ""
}

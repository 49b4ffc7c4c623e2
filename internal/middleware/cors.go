package middleware

import (
	"context"

	"github.com/shareboost/backend/pkg/router"
	"github.com/shareboost/backend/pkg/xcontext"
)

func AllowCors() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if origin := xcontext.HTTPRequest(ctx).Header.Get("Origin"); origin != "" {
			header := xcontext.HTTPWriter(ctx).Header()
			header.Set("Access-Control-Allow-Origin", "*")
			header.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		}

		return nil, nil
	}
}

package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/router"
	"github.com/shareboost/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		startTime := xcontext.StartTime(ctx)
		path := xcontext.HTTPRequest(ctx).URL.Path

		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(path, fmt.Sprint(code)).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(path, fmt.Sprint(code)).
			Observe(time.Since(startTime).Seconds())
	}
}

package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := xcontext.WithRequestState(router.ctx)
		ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
		ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		var req Request
		var bindErr error
		switch method {
		case http.MethodGet:
			bindErr = ginCtx.ShouldBindQuery(&req)
		case http.MethodPost:
			bindErr = ginCtx.ShouldBindJSON(&req)
			if errors.Is(bindErr, io.EOF) {
				// An empty body is fine for requests without parameters.
				bindErr = nil
			}
		default:
			bindErr = errors.New("unsupported method")
		}

		if bindErr != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", bindErr)
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
		}

		if xcontext.Error(ctx) == nil {
			func() {
				for _, middleware := range router.befores {
					newCtx, err := middleware(ctx)
					if err != nil {
						xcontext.SetError(ctx, err)
						return
					}

					if newCtx != nil {
						ctx = newCtx
					}
				}

				resp, err := handler(ctx, &req)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				xcontext.SetResponse(ctx, resp)
			}()

			for _, middleware := range router.afters {
				if _, err := middleware(ctx); err != nil {
					xcontext.SetError(ctx, err)
				}
			}
		}

		writeResponse(ctx, ginCtx)

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func writeResponse(ctx context.Context, ginCtx *gin.Context) {
	if err := xcontext.Error(ctx); err != nil {
		ginCtx.JSON(http.StatusOK, newErrorResponse(err))
		return
	}

	ginCtx.JSON(http.StatusOK, newResponse(xcontext.Response(ctx)))
}

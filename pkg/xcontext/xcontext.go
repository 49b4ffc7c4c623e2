package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/shareboost/backend/config"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/pkg/authenticator"
	"github.com/shareboost/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	txKey            struct{}
	tokenEngineKey   struct{}
	requestUserIDKey struct{}
	httpRequestKey   struct{}
	httpWriterKey    struct{}
	requestStateKey  struct{}
	startTimeKey     struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return cfg
	}

	return config.Configs{}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If a transaction was begun with
// WithDBTransaction and not yet finished, the transaction is returned
// instead of the root handle.
func DB(ctx context.Context) *gorm.DB {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && !state.done {
		return state.tx
	}

	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}

	return nil
}

type txState struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction on the current database handle and
// returns a context whose DB() resolves to that transaction. The caller must
// finish it with WithCommitDBTransaction or WithRollbackDBTransaction.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txState{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && !state.done {
		state.tx.Commit()
		state.done = true
	}
}

// WithRollbackDBTransaction rollbacks the current transaction. It is a no-op
// if the transaction was already committed, so it is safe to defer right
// after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && !state.done {
		state.tx.Rollback()
		state.done = true
	}
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	if engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken]); ok {
		return engine
	}

	return nil
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, userID)
}

func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(httpRequestKey{}).(*http.Request); ok {
		return r
	}

	return nil
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	if w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter); ok {
		return w
	}

	return nil
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}

type requestState struct {
	err  error
	resp any
}

// WithRequestState allocates the per-request holder that SetError and
// SetResponse mutate. The router attaches it once per request so that After
// middlewares and Closers can observe the handler outcome.
func WithRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestStateKey{}, &requestState{})
}

func SetError(ctx context.Context, err error) {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		state.err = err
	}
}

func Error(ctx context.Context) error {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		return state.err
	}

	return nil
}

func SetResponse(ctx context.Context, resp any) {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		state.resp = resp
	}
}

func Response(ctx context.Context) any {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		return state.resp
	}

	return nil
}

package xcontext

import (
	"context"
	"net/http"

	"github.com/overflow-lab/backend/config"
	"github.com/overflow-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey            struct{}
	dbTransactionKey struct{}
	loggerKey        struct{}
	configsKey       struct{}
	requestUserIDKey struct{}
	httpRequestKey   struct{}
	httpWriterKey    struct{}
	tokenEngineKey   struct{}
)

type dbTransaction struct {
	tx       *gorm.DB
	finished bool
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the database
// handler attached by WithDB.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok && !t.finished {
		return t.tx.WithContext(ctx)
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

// WithDBTransaction begins a transaction. Every later call of DB with the
// returned context uses this transaction until it is committed or rolled back.
// Nested calls reuse the outer transaction.
func WithDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok && !t.finished {
		return ctx
	}

	return context.WithValue(ctx, dbTransactionKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) error {
	t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction)
	if !ok || t.finished {
		return nil
	}

	t.finished = true
	return t.tx.Commit().Error
}

// WithRollbackDBTransaction rolls back the transaction if it is not committed
// yet. It is safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction)
	if !ok || t.finished {
		return
	}

	t.finished = true
	t.tx.Rollback()
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewNopLogger()
	}

	return l
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

// RequestUserID returns the id of the authenticated user. An empty string
// means the request is anonymous.
func RequestUserID(ctx context.Context) string {
	id, _ := ctx.Value(requestUserIDKey{}).(string)
	return id
}

func WithHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

func HTTPRequest(ctx context.Context) *http.Request {
	req, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return req
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	return w
}

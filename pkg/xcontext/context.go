package xcontext

import (
	"context"

	"github.com/habitgram/backend/config"
	"github.com/habitgram/backend/pkg/logger"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type (
	dbKey            struct{}
	dbTransactionKey struct{}
	loggerKey        struct{}
	configsKey       struct{}
	requestUserIDKey struct{}
	snowflakeKey     struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if one was opened by
// WithDBTransaction, otherwise the root connection.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok {
		return tx.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a database transaction and attaches it to the
// returned context. Nested calls reuse the outer transaction.
func WithDBTransaction(ctx context.Context) context.Context {
	if _, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok {
		return ctx
	}

	return context.WithValue(ctx, dbTransactionKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	tx, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction)
	if !ok || tx.done {
		return ctx
	}

	tx.tx.Commit()
	tx.done = true
	return context.WithValue(ctx, dbTransactionKey{}, nil)
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	tx, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction)
	if !ok || tx.done {
		return ctx
	}

	tx.tx.Rollback()
	tx.done = true
	return context.WithValue(ctx, dbTransactionKey{}, nil)
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		panic("no logger in context")
	}

	return l
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, userID)
}

func RequestUserID(ctx context.Context) string {
	userID, ok := ctx.Value(requestUserIDKey{}).(string)
	if !ok {
		return ""
	}

	return userID
}

func WithSnowFlakeNode(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, ok := ctx.Value(snowflakeKey{}).(*snowflake.Node)
	if !ok {
		panic("no snowflake node in context")
	}

	return node
}

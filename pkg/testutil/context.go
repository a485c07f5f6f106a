package testutil

import (
	"context"
	"time"

	"github.com/overflow-lab/backend/config"
	"github.com/overflow-lab/backend/migration"
	"github.com/overflow-lab/backend/pkg/authenticator"
	"github.com/overflow-lab/backend/pkg/logger"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	// Every connection of an in-memory sqlite database sees its own database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Default()
	cfg.Env = config.DevelopmentEnv
	cfg.Database.Driver = "sqlite"
	cfg.Database.Database = ":memory:"
	cfg.Auth = config.AuthConfigs{
		TokenSecret: "secret",
		AccessToken: config.TokenConfigs{
			Name:       "auth_token",
			Expiration: time.Minute,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[xcontext.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

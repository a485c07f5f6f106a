package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/overflow-lab/backend/config"
	"github.com/overflow-lab/backend/internal/domain"
	"github.com/overflow-lab/backend/internal/domain/search"
	"github.com/overflow-lab/backend/internal/repository"
	"github.com/overflow-lab/backend/pkg/authenticator"
	"github.com/overflow-lab/backend/pkg/logger"
	"github.com/overflow-lab/backend/pkg/prometheus"
	"github.com/overflow-lab/backend/pkg/router"
	"github.com/overflow-lab/backend/pkg/xcontext"
	"github.com/overflow-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs

	redisClient xredis.Client
	searchIndex search.Index
	metrics     *prometheus.Metrics

	userRepo        repository.UserRepository
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository
	voteRepo        repository.VoteRepository
	commentVoteRepo repository.CommentVoteRepository
	followRepo      repository.FollowRepository

	authDomain    domain.AuthDomain
	postDomain    domain.PostDomain
	commentDomain domain.CommentDomain
	voteDomain    domain.VoteDomain
	followDomain  domain.FollowDomain
	userDomain    domain.UserDomain
	searchDomain  domain.SearchDomain

	router *router.Router
}

// loadConfig reads the TOML file over the default configs. Values like
// ${DB_PASSWORD} are expanded from the environment.
func (s *srv) loadConfig(cctx *cli.Context) error {
	if err := godotenv.Load(cctx.String(envFileFlag.Name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	s.configs = config.Default()

	path := cctx.String(configFlag.Name)
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else if _, err := toml.Decode(os.ExpandEnv(string(content)), &s.configs); err != nil {
		return fmt.Errorf("cannot decode %s: %w", path, err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
	s.loadLogger()
	s.loadTokenEngine()
	return nil
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(s.configs.Logger.Level))
}

func (s *srv) loadTokenEngine() {
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine[xcontext.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.AccessToken))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := s.configs.Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(), // data source name
			DefaultStringSize:         256,                    // default size for string fields
			DisableDatetimePrecision:  true,                   // disable datetime precision, which not supported before MySQL 5.6
			DontSupportRenameIndex:    true,                   // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:   true,                   // `change` when rename column, rename column not supported before MySQL 8, MariaDB
			SkipInitializeWithVersion: false,                  // auto configure based on currently MySQL version
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(parseGormLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows only one writer.
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

// loadRedis connects to redis only if views are de-duplicated.
func (s *srv) loadRedis() {
	if s.configs.Redis.Addr == "" || s.configs.View.DedupWindow <= 0 {
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot connect to redis, views are not de-duplicated: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadSearchIndex() {
	if s.configs.Search.Engine == config.BleveSearchEngine {
		s.searchIndex = search.NewBleveIndex(s.ctx)
	}
}

func (s *srv) loadMetrics() {
	s.metrics = prometheus.NewMetrics()
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.commentVoteRepo = repository.NewCommentVoteRepository()
	s.followRepo = repository.NewFollowRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.commentRepo, s.voteRepo,
		s.commentVoteRepo, s.followRepo, s.redisClient, s.searchIndex)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postRepo)
	s.voteDomain = domain.NewVoteDomain(s.voteRepo, s.commentVoteRepo, s.postRepo,
		s.commentRepo, s.userRepo)
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.postRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.postRepo, s.commentRepo,
		s.voteRepo, s.followRepo)
	s.searchDomain = domain.NewSearchDomain(s.postRepo, s.searchIndex)
}

// close releases the connections opened by the load functions.
func (s *srv) close() {
	if s.searchIndex != nil {
		s.searchIndex.Close()
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot close redis client: %v", err)
		}
	}

	if db := xcontext.DB(s.ctx); db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if l, ok := xcontext.Logger(s.ctx).(interface{ Sync() error }); ok {
		_ = l.Sync()
	}
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

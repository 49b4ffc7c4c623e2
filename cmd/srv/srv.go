package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/shareboost/backend/config"
	"github.com/shareboost/backend/internal/domain"
	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/migration"
	"github.com/shareboost/backend/pkg/authenticator"
	"github.com/shareboost/backend/pkg/logger"
	"github.com/shareboost/backend/pkg/router"
	"github.com/shareboost/backend/pkg/xcontext"
	"github.com/shareboost/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo       repository.UserRepository
	shareEventRepo repository.ShareEventRepository
	feedbackRepo   repository.FeedbackRepository

	redisClient      xredis.Client
	leaderboardCache leaderboard.Cache
	rankingEngine    ranking.Engine

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	shareDomain     domain.ShareDomain
	statisticDomain domain.StatisticDomain
	adminDomain     domain.AdminDomain
	feedbackDomain  domain.FeedbackDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	configs := config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.APIServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			MaxLimit:     getEnvAsInt("API_MAX_LIMIT", 50),
			DefaultLimit: getEnvAsInt("API_DEFAULT_LIMIT", 10),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "shareboost"),
			Password: getEnv("MYSQL_PASSWORD", "shareboost"),
			Database: getEnv("MYSQL_DATABASE", "shareboost"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Leaderboard: config.LeaderboardConfigs{
			CacheTTL: getEnvAsDuration("LEADERBOARD_CACHE_TTL", time.Minute),
		},
		Cron: config.CronConfigs{
			RankReconcileInterval: getEnvAsDuration("RANK_RECONCILE_INTERVAL", 5*time.Minute),
		},
	}

	s.ctx = xcontext.WithConfigs(s.ctx, configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.shareEventRepo = repository.NewShareEventRepository()
	s.feedbackRepo = repository.NewFeedbackRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)
	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken)
	s.ctx = xcontext.WithTokenEngine(s.ctx, tokenEngine)

	s.leaderboardCache = leaderboard.NewCache(s.redisClient)
	s.rankingEngine = ranking.New(s.userRepo, s.leaderboardCache)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.rankingEngine)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.rankingEngine)
	s.shareDomain = domain.NewShareDomain(s.userRepo, s.shareEventRepo, s.rankingEngine, s.leaderboardCache)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.rankingEngine, s.leaderboardCache)
	s.adminDomain = domain.NewAdminDomain(s.userRepo, s.shareEventRepo, s.rankingEngine)
	s.feedbackDomain = domain.NewFeedbackDomain(s.feedbackRepo, s.userRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}

	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return fallback
}

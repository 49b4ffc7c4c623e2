package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer   APIServerConfigs
	Database    DatabaseConfigs
	Auth        AuthConfigs
	Redis       RedisConfigs
	Leaderboard LeaderboardConfigs
	Cron        CronConfigs
}

type APIServerConfigs struct {
	Host string
	Port string

	MaxLimit     int
	DefaultLimit int
}

func (c APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type LeaderboardConfigs struct {
	// CacheTTL caps the staleness window of a cached leaderboard page.
	CacheTTL time.Duration
}

type CronConfigs struct {
	// RankReconcileInterval is the period between two full rank
	// recomputations.
	RankReconcileInterval time.Duration
}

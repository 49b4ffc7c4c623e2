package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/internal/middleware"
	"github.com/shareboost/backend/pkg/router"
	"github.com/shareboost/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	common.RegisterPrometheus()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on %s", cfg.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.AllowCors())

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	authRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.GET(authRouter, "/getMyRank", s.userDomain.GetMyRank)
		router.POST(authRouter, "/updateUser", s.userDomain.UpdateUser)

		// Share API
		router.POST(authRouter, "/share", s.shareDomain.Share)
		router.GET(authRouter, "/getMyShareHistory", s.shareDomain.GetMyShareHistory)

		// Statistic API
		router.GET(authRouter, "/getLeaderboardAroundMe", s.statisticDomain.GetLeaderboardAroundMe)
	}

	// These following APIs are for admins only.
	adminRouter := s.router.Branch()
	adminRouter.Before(authVerifier.Middleware())
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.GET(adminRouter, "/getUsers", s.adminDomain.GetUsers)
		router.GET(adminRouter, "/getDashboard", s.adminDomain.GetDashboard)
		router.GET(adminRouter, "/getPlatformStats", s.adminDomain.GetPlatformStats)
		router.GET(adminRouter, "/getShareHistory", s.adminDomain.GetShareHistory)
		router.POST(adminRouter, "/promoteUser", s.adminDomain.PromoteUser)
		router.POST(adminRouter, "/recomputeRanks", s.adminDomain.RecomputeRanks)

		// Feedback API
		router.GET(adminRouter, "/getFeedbackList", s.feedbackDomain.GetFeedbackList)
		router.GET(adminRouter, "/getFeedbackStats", s.feedbackDomain.GetFeedbackStats)
	}

	// Feedback submission accepts anonymous visitors; a valid token only
	// attributes the submission.
	feedbackRouter := s.router.Branch()
	feedbackRouter.Before(middleware.NewAuthVerifier().WithAccessToken().WithOptional().Middleware())
	router.POST(feedbackRouter, "/submitFeedback", s.feedbackDomain.Submit)

	// Public API.
	router.POST(s.router, "/signup", s.authDomain.Signup)
	router.POST(s.router, "/login", s.authDomain.Login)
	router.GET(s.router, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	router.GET(s.router, "/getTopPerformers", s.statisticDomain.GetTopPerformers)
	s.router.Raw(http.MethodGet, "/metrics", promhttp.Handler())
}

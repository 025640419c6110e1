package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shinyyama/leaderboard-backend/internal/handler"
	"github.com/shinyyama/leaderboard-backend/internal/metrics"
	appmw "github.com/shinyyama/leaderboard-backend/internal/middleware"
	"github.com/shinyyama/leaderboard-backend/internal/repository"
	"github.com/shinyyama/leaderboard-backend/internal/reward"
	"github.com/shinyyama/leaderboard-backend/internal/service"
	"gorm.io/gorm"
)

type Options struct {
	SHA       string
	BuildTime string
	// OriginSuffixes lists host suffixes allowed by CORS besides localhost.
	OriginSuffixes []string
	// Rewards defaults to reward.NewSource().
	Rewards reward.Source
}

type Server struct {
	e         *echo.Echo
	userRepo  repository.UserRepository
	eventRepo repository.ClaimEventRepository
	claimRepo repository.ClaimRepository
	dbReady   atomic.Bool
}

// New wires the API. db may be nil; requests then fail with 503 until SetDB.
func New(db *gorm.DB, opts Options) *Server {
	if opts.Rewards == nil {
		opts.Rewards = reward.NewSource()
	}
	m := metrics.New(prometheus.NewRegistry())

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(appmw.Metrics(m))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
		AllowOriginFunc: allowOrigin(opts.OriginSuffixes),
	}))

	s := &Server{
		e:         e,
		userRepo:  repository.NewUserRepository(db),
		eventRepo: repository.NewClaimEventRepository(db),
		claimRepo: repository.NewClaimRepository(db),
	}
	s.dbReady.Store(db != nil)

	userSvc := service.NewUserService(s.userRepo)
	claimSvc := service.NewClaimService(s.claimRepo, s.userRepo, s.eventRepo, opts.Rewards, service.WithObserver(m))
	boardSvc := service.NewLeaderboardService(s.userRepo)

	userHandler := handler.NewUserHandler(userSvc)
	claimHandler := handler.NewClaimHandler(claimSvc)
	boardHandler := handler.NewLeaderboardHandler(boardSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"ok":         "true",
			"git_sha":    opts.SHA,
			"build_time": opts.BuildTime,
			"db":         s.dbReady.Load(),
		})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	api := e.Group("/api")
	api.POST("/users/add", userHandler.Create)
	api.GET("/users", userHandler.List)
	api.GET("/users/leaderboard", boardHandler.Get)
	api.GET("/users/leaderboard/podium", boardHandler.Podium)
	api.GET("/users/:id", userHandler.Get)
	api.GET("/users/:id/history", claimHandler.UserHistory)
	api.POST("/claim-points", claimHandler.Claim)
	api.GET("/claim-points/history", claimHandler.History)

	return s
}

func allowOrigin(suffixes []string) func(string) (bool, error) {
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		host := u.Hostname()
		for _, suffix := range suffixes {
			suffix = strings.TrimSpace(suffix)
			if suffix != "" && strings.HasSuffix(host, suffix) {
				return true, nil
			}
		}
		return false, nil
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// SetDB attaches the database to every repository.
func (s *Server) SetDB(db *gorm.DB) {
	s.userRepo.SetDB(db)
	s.eventRepo.SetDB(db)
	s.claimRepo.SetDB(db)
	s.dbReady.Store(db != nil)
}

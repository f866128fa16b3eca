package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/betlog/cache"
	"github.com/padraicbc/betlog/config"
	"github.com/padraicbc/betlog/db"
	"github.com/padraicbc/betlog/handlers"
	applog "github.com/padraicbc/betlog/logger"
	"github.com/padraicbc/betlog/metrics"
	mw "github.com/padraicbc/betlog/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New("betlog-api", cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	statsCache, err := cache.Connect(cfg.RedisAddr)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	if statsCache != nil {
		defer statsCache.Close()
	}

	h := handlers.New(bdb, statsCache, logger, cfg)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/api/signup", h.Signup)
	e.POST("/api/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))
	api.GET("/me", h.Me)
	api.GET("/bets", h.ListBets)
	api.POST("/bets", h.CreateBet)
	api.PUT("/bets/:id", h.UpdateBet)
	api.POST("/bets/:id/settle", h.SettleBet)
	api.DELETE("/bets/:id", h.DeleteBet)
	api.GET("/stats", h.Stats)
	api.GET("/bankrolls", h.ListBankrolls)
	api.PUT("/bankrolls/:id", h.UpdateBankroll)
	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)

	metricsSrv := metrics.StartServer(cfg.MetricsPort, func(ctx context.Context) error {
		return bdb.PingContext(ctx)
	})
	defer func() { _ = metricsSrv.Close() }()

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
